// Package files implements the file manager: creation, lookup, listing,
// visibility and raw data retrieval for the hierarchical namespace.
package files

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"mime"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/basit/filestash-backend/apperrors"
	"github.com/basit/filestash-backend/models"
	"github.com/basit/filestash-backend/storage"
)

// DefaultMimeType is served when the file name's extension is unknown.
const DefaultMimeType = "application/octet-stream"

// ThumbnailQueue accepts fire-and-forget thumbnail jobs. Enqueue
// reports whether the job was accepted; it must never block.
type ThumbnailQueue interface {
	Enqueue(userID, fileID uuid.UUID) bool
}

type Manager struct {
	meta  *storage.Metadata
	blobs *storage.BlobStore
	queue ThumbnailQueue
}

func NewManager(meta *storage.Metadata, blobs *storage.BlobStore, queue ThumbnailQueue) *Manager {
	return &Manager{meta: meta, blobs: blobs, queue: queue}
}

// CreateParams is the request body of POST /files. Data is the
// base64-encoded content, required for everything but folders.
type CreateParams struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

// Create validates and stores a new entry. Files and images get their
// decoded content written to the blob store first; image uploads then
// enqueue a thumbnail job, and a full queue only logs — the upload
// already succeeded.
func (mgr *Manager) Create(ctx context.Context, userID uuid.UUID, p CreateParams) (models.FileView, error) {
	var zero models.FileView

	if p.Name == "" {
		return zero, apperrors.Invalid("Missing name")
	}
	if !models.ValidType(p.Type) {
		return zero, apperrors.Invalid("Missing type")
	}
	if p.Type != models.TypeFolder && p.Data == "" {
		return zero, apperrors.Invalid("Missing data")
	}

	parentID, err := mgr.resolveParent(ctx, userID, p.ParentID)
	if err != nil {
		return zero, err
	}

	file := &models.File{
		UserID:   userID,
		Name:     p.Name,
		Type:     p.Type,
		IsPublic: p.IsPublic,
		ParentID: parentID,
	}

	if p.Type != models.TypeFolder {
		data, err := base64.StdEncoding.DecodeString(p.Data)
		if err != nil {
			return zero, apperrors.Invalid("Invalid data")
		}
		path, err := mgr.blobs.Write(data)
		if err != nil {
			return zero, err
		}
		file.LocalPath = path
	}

	if err := mgr.meta.CreateFile(ctx, file); err != nil {
		return zero, err
	}

	if file.Type == models.TypeImage {
		if !mgr.queue.Enqueue(userID, file.ID) {
			log.Printf("thumbnail queue full, dropping job for file %s", file.ID)
		}
	}

	return file.View(), nil
}

// resolveParent checks the parent constraint: root stays nil, anything
// else must be a folder owned by the same user. A foreign or missing
// parent is reported identically.
func (mgr *Manager) resolveParent(ctx context.Context, userID uuid.UUID, parent string) (*uuid.UUID, error) {
	if parent == "" || parent == models.RootParent {
		return nil, nil
	}
	parentID, err := uuid.Parse(parent)
	if err != nil {
		return nil, apperrors.Invalid("Parent not found")
	}
	parentFile, err := mgr.meta.FindOwnedFile(ctx, parentID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Invalid("Parent not found")
		}
		return nil, err
	}
	if parentFile.Type != models.TypeFolder {
		return nil, apperrors.Invalid("Parent is not a folder")
	}
	return &parentID, nil
}

// Get returns the entry with the given id if it belongs to userID.
// Someone else's entry looks exactly like a missing one.
func (mgr *Manager) Get(ctx context.Context, userID uuid.UUID, id string) (models.FileView, error) {
	fileID, err := storage.ParseID(id)
	if err != nil {
		return models.FileView{}, err
	}
	file, err := mgr.meta.FindOwnedFile(ctx, fileID, userID)
	if err != nil {
		return models.FileView{}, err
	}
	return file.View(), nil
}

// List returns one 20-entry page of the user's entries under parent
// ("" or "0" for root). An unparseable parent matches nothing.
func (mgr *Manager) List(ctx context.Context, userID uuid.UUID, parent string, page int) ([]models.FileView, error) {
	var parentID *uuid.UUID
	if parent != "" && parent != models.RootParent {
		id, err := uuid.Parse(parent)
		if err != nil {
			return []models.FileView{}, nil
		}
		parentID = &id
	}

	entries, err := mgr.meta.ListFiles(ctx, userID, parentID, page)
	if err != nil {
		return nil, err
	}

	views := make([]models.FileView, 0, len(entries))
	for _, e := range entries {
		views = append(views, e.View())
	}
	return views, nil
}

// SetVisibility overwrites isPublic on an owned entry and returns the
// updated projection. Idempotent by construction.
func (mgr *Manager) SetVisibility(ctx context.Context, userID uuid.UUID, id string, public bool) (models.FileView, error) {
	fileID, err := storage.ParseID(id)
	if err != nil {
		return models.FileView{}, err
	}
	file, err := mgr.meta.FindOwnedFile(ctx, fileID, userID)
	if err != nil {
		return models.FileView{}, err
	}
	if err := mgr.meta.SetFilePublic(ctx, fileID, public); err != nil {
		return models.FileView{}, err
	}
	file.IsPublic = public
	return file.View(), nil
}

// ReadData returns the raw content and MIME type of an entry. This is
// the one operation that works without a token: public files are open
// to everyone, private ones only to their owner — and a private file
// requested by anyone else is reported as missing, not forbidden.
func (mgr *Manager) ReadData(ctx context.Context, requesterID *uuid.UUID, id string) ([]byte, string, error) {
	fileID, err := storage.ParseID(id)
	if err != nil {
		return nil, "", err
	}
	file, err := mgr.meta.FindFile(ctx, fileID)
	if err != nil {
		return nil, "", err
	}

	if file.Type == models.TypeFolder {
		return nil, "", apperrors.Invalid("A folder doesn't have content")
	}
	if !file.IsPublic {
		if requesterID == nil || *requesterID != file.UserID {
			return nil, "", apperrors.ErrNotFound
		}
	}
	if file.LocalPath == "" {
		return nil, "", apperrors.ErrNotFound
	}

	data, err := mgr.blobs.Read(file.LocalPath)
	if err != nil {
		// Missing on-disk data degrades to 404, never 500.
		return nil, "", apperrors.ErrNotFound
	}

	mimeType := mime.TypeByExtension(filepath.Ext(file.Name))
	if mimeType == "" {
		mimeType = DefaultMimeType
	}
	return data, mimeType, nil
}
