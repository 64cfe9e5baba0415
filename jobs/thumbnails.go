package jobs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/basit/filestash-backend/apperrors"
	"github.com/basit/filestash-backend/models"
	"github.com/basit/filestash-backend/storage"
)

// Derivative widths, generated in this order. A failure aborts the
// remaining widths but leaves earlier derivatives in place; they are
// regenerable and non-authoritative.
var thumbnailWidths = [...]int{500, 250, 100}

// Thumbnailer turns an uploaded image into three resized derivatives
// stored beside the original as <localPath>_<width>.
type Thumbnailer struct {
	meta  *storage.Metadata
	blobs *storage.BlobStore
}

func NewThumbnailer(meta *storage.Metadata, blobs *storage.BlobStore) *Thumbnailer {
	return &Thumbnailer{meta: meta, blobs: blobs}
}

// Process handles one job. Every returned error is terminal for the
// job; there is no retry path.
func (t *Thumbnailer) Process(ctx context.Context, job Job) error {
	if job.FileID == uuid.Nil {
		return errors.New("Missing fileId")
	}
	if job.UserID == uuid.Nil {
		return errors.New("Missing userId")
	}

	file, err := t.meta.FindOwnedFile(ctx, job.FileID, job.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errors.New("File not found")
		}
		return err
	}
	if file.Type != models.TypeImage {
		return errors.New("File is not an image")
	}

	src, err := t.blobs.Read(file.LocalPath)
	if err != nil {
		return fmt.Errorf("read original: %w", err)
	}
	img, format, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	encFormat, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unsupported image format %q: %w", format, err)
	}

	for _, width := range thumbnailWidths {
		resized := imaging.Resize(img, width, 0, imaging.Lanczos)
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, resized, encFormat); err != nil {
			return fmt.Errorf("encode %dpx derivative: %w", width, err)
		}
		if err := t.blobs.WriteAt(DerivativePath(file.LocalPath, width), buf.Bytes()); err != nil {
			return fmt.Errorf("write %dpx derivative: %w", width, err)
		}
	}
	return nil
}

// DerivativePath names the derivative blob for a given original and
// width.
func DerivativePath(localPath string, width int) string {
	return fmt.Sprintf("%s_%d", localPath, width)
}
