package models

import (
	"strings"
	"time"
)

const (
	FileTypePDF   = "pdf"
	FileTypeImage = "image"
)

// Nationalities is the closed set of grouping tags the catalog accepts.
var Nationalities = []string{"philippines", "ethiopia", "kenya"}

func ValidNationality(n string) bool {
	for _, v := range Nationalities {
		if v == n {
			return true
		}
	}
	return false
}

// DeriveFileType maps a declared MIME type onto the stored category.
func DeriveFileType(mimeType string) string {
	if strings.Contains(mimeType, "pdf") {
		return FileTypePDF
	}
	return FileTypeImage
}

// CV is one candidate record plus its uploaded document. Exactly one of
// FilePath (filesystem/bucket strategy) and FileContent (inline base64) is
// set, decided at creation and never migrated.
type CV struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id" bson:"_id"`
	Name        string `gorm:"column:name;type:text" json:"name" bson:"name"`
	Age         int    `gorm:"column:age;type:integer" json:"age" bson:"age"`
	Nationality string `gorm:"column:nationality;type:text;index" json:"nationality" bson:"nationality"`
	Experience  string `gorm:"column:experience;type:text" json:"experience" bson:"experience"`

	FileName    string `gorm:"column:file_name;type:text" json:"file_name" bson:"file_name"`
	FileType    string `gorm:"column:file_type;type:text" json:"file_type" bson:"file_type"`
	FilePath    string `gorm:"column:file_path;type:text" json:"-" bson:"file_path,omitempty"`
	FileContent string `gorm:"column:file_content;type:text" json:"file_content,omitempty" bson:"file_content,omitempty"`

	UploadDate time.Time `gorm:"column:upload_date;type:timestamptz" json:"upload_date" bson:"upload_date"`
}

func (CV) TableName() string { return "cvs" }

// CVUpdate carries the mutable subset of a record. Nil fields are left as-is;
// file metadata and the upload timestamp are never touched by an update.
type CVUpdate struct {
	Name        *string `json:"name,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	Experience  *string `json:"experience,omitempty"`
}

func (u CVUpdate) IsZero() bool {
	return u.Name == nil && u.Age == nil && u.Nationality == nil && u.Experience == nil
}

// Changes returns the set fields keyed by column name, shared by the SQL and
// document backends.
func (u CVUpdate) Changes() map[string]any {
	m := map[string]any{}
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Age != nil {
		m["age"] = *u.Age
	}
	if u.Nationality != nil {
		m["nationality"] = *u.Nationality
	}
	if u.Experience != nil {
		m["experience"] = *u.Experience
	}
	return m
}

// Apply mutates cv in place, used by the in-memory backend.
func (u CVUpdate) Apply(cv *CV) {
	if u.Name != nil {
		cv.Name = *u.Name
	}
	if u.Age != nil {
		cv.Age = *u.Age
	}
	if u.Nationality != nil {
		cv.Nationality = *u.Nationality
	}
	if u.Experience != nil {
		cv.Experience = *u.Experience
	}
}
