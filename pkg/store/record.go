package store

import "io/fs"

// Record holds the preserved metadata for a single tracked file.
// Path is the sole identity key; there is no versioning or history.
type Record struct {
	// Path is the file path relative to the repository root.
	Path string `gorm:"primaryKey;column:path"`

	// Mode holds the permission bits (including setuid/setgid/sticky).
	Mode uint32 `gorm:"column:mode;not null"`

	// Mtime is the modification time in seconds since the epoch.
	Mtime int64 `gorm:"column:mtime;not null"`

	// Atime is the access time in seconds since the epoch.
	Atime int64 `gorm:"column:atime;not null"`
}

// TableName overrides the GORM table name.
func (Record) TableName() string {
	return "files"
}

// FileMode returns the record's mode as an fs.FileMode suitable for Chmod.
func (r Record) FileMode() fs.FileMode {
	return fs.FileMode(r.Mode)
}
