package domain

import "time"

// FileRecord describes one fully received upload. Records are immutable;
// the catalog and the bytes on disk both die with the process.
type FileRecord struct {
	ID       string    `json:"file_id"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Path     string    `json:"-"`
	Uploader string    `json:"uploader"`
	At       time.Time `json:"timestamp"`
}
