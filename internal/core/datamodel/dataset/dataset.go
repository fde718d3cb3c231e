package dataset

import "time"

// Dataset is the persistence model for dataset metadata records.
type Dataset struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string    `gorm:"column:name;uniqueIndex;not null"`
	Rows       int64     `gorm:"column:rows;not null"`
	Columns    int64     `gorm:"column:columns;not null"`
	UploadedBy string    `gorm:"column:uploaded_by;not null;index"`
	UploadDate time.Time `gorm:"column:upload_date;not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Dataset) TableName() string {
	return "datasets_metadata"
}
