package files

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/basit/filestash-backend/apperrors"
	"github.com/basit/filestash-backend/models"
	"github.com/basit/filestash-backend/storage"
)

type fakeQueue struct {
	accept bool
	jobs   [][2]uuid.UUID
}

func (q *fakeQueue) Enqueue(userID, fileID uuid.UUID) bool {
	if !q.accept {
		return false
	}
	q.jobs = append(q.jobs, [2]uuid.UUID{userID, fileID})
	return true
}

func newTestManager(t *testing.T) (*Manager, *storage.Metadata, *fakeQueue) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.File{}))

	meta := storage.NewMetadata(db)
	blobs := storage.NewBlobStore(t.TempDir())
	queue := &fakeQueue{accept: true}
	return NewManager(meta, blobs, queue), meta, queue
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)
	owner := uuid.New()

	cases := []struct {
		name   string
		params CreateParams
		errMsg string
	}{
		{"missing name", CreateParams{Type: models.TypeFile, Data: b64("x")}, "Missing name"},
		{"missing type", CreateParams{Name: "n"}, "Missing type"},
		{"bad type", CreateParams{Name: "n", Type: "link", Data: b64("x")}, "Missing type"},
		{"missing data", CreateParams{Name: "n", Type: models.TypeFile}, "Missing data"},
		{"malformed data", CreateParams{Name: "n", Type: models.TypeFile, Data: "%%not-base64%%"}, "Invalid data"},
		{"unknown parent", CreateParams{Name: "n", Type: models.TypeFolder, ParentID: uuid.New().String()}, "Parent not found"},
		{"malformed parent", CreateParams{Name: "n", Type: models.TypeFolder, ParentID: "zzz"}, "Parent not found"},
	}
	for _, tc := range cases {
		_, err := mgr.Create(ctx, owner, tc.params)
		require.Error(t, err, tc.name)
		assert.True(t, apperrors.IsValidation(err), tc.name)
		assert.EqualError(t, err, tc.errMsg, tc.name)
	}
}

func TestCreateFolder(t *testing.T) {
	ctx := context.Background()
	mgr, meta, queue := newTestManager(t)
	owner := uuid.New()

	view, err := mgr.Create(ctx, owner, CreateParams{Name: "docs", Type: models.TypeFolder})
	require.NoError(t, err)

	assert.Equal(t, "docs", view.Name)
	assert.Equal(t, models.TypeFolder, view.Type)
	assert.Equal(t, models.RootParent, view.ParentID)
	assert.False(t, view.IsPublic)
	assert.Empty(t, queue.jobs)

	id, err := storage.ParseID(view.ID)
	require.NoError(t, err)
	stored, err := meta.FindOwnedFile(ctx, id, owner)
	require.NoError(t, err)
	assert.Empty(t, stored.LocalPath, "folders never have a blob")
}

func TestCreateFileWritesBlob(t *testing.T) {
	ctx := context.Background()
	mgr, meta, _ := newTestManager(t)
	owner := uuid.New()

	view, err := mgr.Create(ctx, owner, CreateParams{Name: "n.txt", Type: models.TypeFile, Data: b64("hi")})
	require.NoError(t, err)

	id, err := storage.ParseID(view.ID)
	require.NoError(t, err)
	stored, err := meta.FindOwnedFile(ctx, id, owner)
	require.NoError(t, err)
	require.NotEmpty(t, stored.LocalPath)

	data, mimeType, err := mgr.ReadData(ctx, &owner, view.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), data)
	assert.Contains(t, mimeType, "text/plain")
}

func TestCreateNestedUnderFolder(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)
	owner := uuid.New()

	folder, err := mgr.Create(ctx, owner, CreateParams{Name: "docs", Type: models.TypeFolder})
	require.NoError(t, err)

	child, err := mgr.Create(ctx, owner, CreateParams{
		Name: "in.txt", Type: models.TypeFile, Data: b64("x"), ParentID: folder.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, folder.ID, child.ParentID)

	listed, err := mgr.List(ctx, owner, folder.ID, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, child.ID, listed[0].ID)
}

func TestCreateRejectsNonFolderParent(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)
	owner := uuid.New()

	plain, err := mgr.Create(ctx, owner, CreateParams{Name: "n.txt", Type: models.TypeFile, Data: b64("x")})
	require.NoError(t, err)

	_, err = mgr.Create(ctx, owner, CreateParams{
		Name: "c.txt", Type: models.TypeFile, Data: b64("x"), ParentID: plain.ID,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Parent is not a folder")
}

func TestCreateRejectsForeignParent(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)
	owner := uuid.New()
	stranger := uuid.New()

	folder, err := mgr.Create(ctx, owner, CreateParams{Name: "docs", Type: models.TypeFolder})
	require.NoError(t, err)

	// A folder owned by someone else is indistinguishable from a
	// missing one.
	_, err = mgr.Create(ctx, stranger, CreateParams{
		Name: "c.txt", Type: models.TypeFile, Data: b64("x"), ParentID: folder.ID,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Parent not found")
}

func TestCreateImageEnqueuesJob(t *testing.T) {
	ctx := context.Background()
	mgr, _, queue := newTestManager(t)
	owner := uuid.New()

	view, err := mgr.Create(ctx, owner, CreateParams{Name: "p.png", Type: models.TypeImage, Data: b64("raw")})
	require.NoError(t, err)

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, owner, queue.jobs[0][0])
	assert.Equal(t, view.ID, queue.jobs[0][1].String())
}

func TestCreateImageSucceedsWhenQueueFull(t *testing.T) {
	ctx := context.Background()
	mgr, _, queue := newTestManager(t)
	queue.accept = false

	view, err := mgr.Create(ctx, uuid.New(), CreateParams{Name: "p.png", Type: models.TypeImage, Data: b64("raw")})
	require.NoError(t, err, "upload must not depend on queue availability")
	assert.NotEmpty(t, view.ID)
}

func TestGetHidesForeignFiles(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)
	owner := uuid.New()

	view, err := mgr.Create(ctx, owner, CreateParams{Name: "n.txt", Type: models.TypeFile, Data: b64("x")})
	require.NoError(t, err)

	got, err := mgr.Get(ctx, owner, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.ID, got.ID)

	_, err = mgr.Get(ctx, uuid.New(), view.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = mgr.Get(ctx, owner, "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSetVisibilityIdempotent(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)
	owner := uuid.New()

	view, err := mgr.Create(ctx, owner, CreateParams{Name: "n.txt", Type: models.TypeFile, Data: b64("x")})
	require.NoError(t, err)

	pub, err := mgr.SetVisibility(ctx, owner, view.ID, true)
	require.NoError(t, err)
	assert.True(t, pub.IsPublic)

	pub, err = mgr.SetVisibility(ctx, owner, view.ID, true)
	require.NoError(t, err)
	assert.True(t, pub.IsPublic)

	priv, err := mgr.SetVisibility(ctx, owner, view.ID, false)
	require.NoError(t, err)
	assert.False(t, priv.IsPublic)

	_, err = mgr.SetVisibility(ctx, uuid.New(), view.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReadDataVisibility(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)
	owner := uuid.New()
	stranger := uuid.New()

	view, err := mgr.Create(ctx, owner, CreateParams{Name: "n.txt", Type: models.TypeFile, Data: b64("hi")})
	require.NoError(t, err)

	// Private: anonymous and foreign requests are both "Not found".
	_, _, err = mgr.ReadData(ctx, nil, view.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, _, err = mgr.ReadData(ctx, &stranger, view.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The same shape as a file that does not exist at all.
	_, _, err = mgr.ReadData(ctx, nil, uuid.New().String())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The owner can read it.
	data, _, err := mgr.ReadData(ctx, &owner, view.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), data)

	// Published: anyone can read it.
	_, err = mgr.SetVisibility(ctx, owner, view.ID, true)
	require.NoError(t, err)
	data, _, err = mgr.ReadData(ctx, nil, view.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), data)
}

func TestReadDataFolderHasNoContent(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)
	owner := uuid.New()

	folder, err := mgr.Create(ctx, owner, CreateParams{Name: "docs", Type: models.TypeFolder})
	require.NoError(t, err)

	_, _, err = mgr.ReadData(ctx, &owner, folder.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.EqualError(t, err, "A folder doesn't have content")
}

func TestReadDataMissingBlob(t *testing.T) {
	ctx := context.Background()
	mgr, meta, _ := newTestManager(t)
	owner := uuid.New()

	// Entry whose blob path points nowhere.
	file := &models.File{UserID: owner, Name: "gone.txt", Type: models.TypeFile, LocalPath: "/nonexistent/blob"}
	require.NoError(t, meta.CreateFile(ctx, file))

	_, _, err := mgr.ReadData(ctx, &owner, file.ID.String())
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "missing on-disk data degrades to 404")
}

func TestReadDataDefaultMimeType(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)
	owner := uuid.New()

	view, err := mgr.Create(ctx, owner, CreateParams{Name: "blob", Type: models.TypeFile, Data: b64("x")})
	require.NoError(t, err)

	_, mimeType, err := mgr.ReadData(ctx, &owner, view.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultMimeType, mimeType)
}

func TestListMalformedParentMatchesNothing(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t)
	owner := uuid.New()

	_, err := mgr.Create(ctx, owner, CreateParams{Name: "n.txt", Type: models.TypeFile, Data: b64("x")})
	require.NoError(t, err)

	listed, err := mgr.List(ctx, owner, "not-a-uuid", 0)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
