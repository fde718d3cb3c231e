package dataset

import (
	errors "github.com/joshwmy/record-management/internal"
	"github.com/joshwmy/record-management/internal/core/common/validation"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

type CreateDatasetDTO struct {
	Name       string `json:"name"`
	Rows       int64  `json:"rows"`
	Columns    int64  `json:"columns"`
	UploadedBy string `json:"uploaded_by"`
	UploadDate string `json:"upload_date"`
}

func (d CreateDatasetDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required()
	v.Field("rows", d.Rows).MinInt(0, errors.ErrCodeValidationFailed)
	v.Field("columns", d.Columns).MinInt(0, errors.ErrCodeValidationFailed)
	v.Field("uploaded_by", d.UploadedBy).Required()
	v.Field("upload_date", d.UploadDate).Required().Date(dateTimeLayout, dateLayout)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateDatasetDTO struct {
	Rows       *int64  `json:"rows,omitempty"`
	Columns    *int64  `json:"columns,omitempty"`
	UploadedBy *string `json:"uploaded_by,omitempty"`
	UploadDate *string `json:"upload_date,omitempty"`
}

func (d UpdateDatasetDTO) Validate() error {
	v := validation.NewValidator()
	if d.Rows != nil {
		v.Field("rows", *d.Rows).MinInt(0, errors.ErrCodeValidationFailed)
	}
	if d.Columns != nil {
		v.Field("columns", *d.Columns).MinInt(0, errors.ErrCodeValidationFailed)
	}
	if d.UploadedBy != nil {
		v.Field("uploaded_by", *d.UploadedBy).Required()
	}
	if d.UploadDate != nil {
		v.Field("upload_date", *d.UploadDate).Required().Date(dateTimeLayout, dateLayout)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
