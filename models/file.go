package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry types. Folders carry no blob; files and images point at one via
// LocalPath.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// RootParent is the sentinel clients use for "no parent".
const RootParent = "0"

func ValidType(t string) bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}

type File struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	Name      string     `gorm:"not null"`
	Type      string     `gorm:"not null"`
	IsPublic  bool       `gorm:"default:false"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	LocalPath string     `json:"-"`
	// CreatedAt is the explicit sort key for pagination; insertion order
	// alone is not reproducible under concurrent uploads.
	CreatedAt time.Time `gorm:"index"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FileView is the public projection of an entry. LocalPath is internal
// and never exposed.
type FileView struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID string `json:"parentId"`
}

func (f *File) View() FileView {
	parent := RootParent
	if f.ParentID != nil {
		parent = f.ParentID.String()
	}
	return FileView{
		ID:       f.ID.String(),
		UserID:   f.UserID.String(),
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: parent,
	}
}
