package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basit/filestash-backend/apperrors"
	"github.com/basit/filestash-backend/models"
)

// PageSize is the fixed page length for file listings.
const PageSize = 20

// Metadata wraps the gorm connection with the queries the guard, the
// file manager and the thumbnail worker need.
type Metadata struct {
	db *gorm.DB
}

func NewMetadata(db *gorm.DB) *Metadata {
	return &Metadata{db: db}
}

// ParseID turns a textual id into a uuid. Malformed ids are reported as
// ErrNotFound so clients can't probe the id format.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperrors.ErrNotFound
	}
	return id, nil
}

func (m *Metadata) CreateUser(ctx context.Context, user *models.User) error {
	err := m.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
		return apperrors.Internal("create user", err)
	}
	return nil
}

func (m *Metadata) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := m.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Internal("find user by email", err)
	}
	return &user, nil
}

func (m *Metadata) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := m.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Internal("find user by id", err)
	}
	return &user, nil
}

func (m *Metadata) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := m.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, apperrors.Internal("count users", err)
	}
	return n, nil
}

func (m *Metadata) CreateFile(ctx context.Context, file *models.File) error {
	if err := m.db.WithContext(ctx).Create(file).Error; err != nil {
		return apperrors.Internal("create file", err)
	}
	return nil
}

// FindFile looks an entry up by id alone. Used by the anonymous data
// endpoint, which applies its own visibility rules.
func (m *Metadata) FindFile(ctx context.Context, id uuid.UUID) (*models.File, error) {
	var file models.File
	err := m.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Internal("find file", err)
	}
	return &file, nil
}

// FindOwnedFile looks an entry up by id and owner in one query, so an
// entry owned by someone else is indistinguishable from a missing one.
func (m *Metadata) FindOwnedFile(ctx context.Context, id, userID uuid.UUID) (*models.File, error) {
	var file models.File
	err := m.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Internal("find owned file", err)
	}
	return &file, nil
}

// ListFiles returns one page of the user's entries under the given
// parent (nil means root). Ordered by creation time with the id as a
// tiebreaker so "page N" is reproducible under concurrent inserts.
func (m *Metadata) ListFiles(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID, page int) ([]models.File, error) {
	if page < 0 {
		page = 0
	}
	q := m.db.WithContext(ctx).Where("user_id = ?", userID)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}

	var files []models.File
	err := q.Order("created_at, id").
		Offset(page * PageSize).
		Limit(PageSize).
		Find(&files).Error
	if err != nil {
		return nil, apperrors.Internal("list files", err)
	}
	return files, nil
}

// SetFilePublic overwrites the visibility flag. The write is a full
// overwrite, not a toggle, so repeating it is a no-op.
func (m *Metadata) SetFilePublic(ctx context.Context, id uuid.UUID, public bool) error {
	err := m.db.WithContext(ctx).Model(&models.File{}).
		Where("id = ?", id).
		Update("is_public", public).Error
	if err != nil {
		return apperrors.Internal("set file visibility", err)
	}
	return nil
}

func (m *Metadata) CountFiles(ctx context.Context) (int64, error) {
	var n int64
	if err := m.db.WithContext(ctx).Model(&models.File{}).Count(&n).Error; err != nil {
		return 0, apperrors.Internal("count files", err)
	}
	return n, nil
}

// Ping reports whether the underlying database is reachable.
func (m *Metadata) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("metadata ping: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
