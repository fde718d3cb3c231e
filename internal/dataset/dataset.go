package dataset

import (
	"errors"
	"time"
)

// Dataset is a metadata record describing an uploaded dataset.
type Dataset struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Rows       int64     `json:"rows"`
	Columns    int64     `json:"columns"`
	UploadedBy string    `json:"uploaded_by"`
	UploadDate time.Time `json:"upload_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var (
	ErrNotFound  = errors.New("dataset not found")
	ErrDuplicate = errors.New("dataset already exists")
)

// Filter narrows List results; empty fields match everything.
type Filter struct {
	UploadedBy string
}
