package product

import (
	"waroengg-be/pkg/response"
)

var (
	ErrProductNotFound    = response.NewError(404, "product not found")
	ErrBannerNotFound     = response.NewError(404, "banner not found")
	ErrInvalidFileType    = response.NewError(400, "invalid file type")
	ErrFileTooLarge       = response.NewError(400, "file too large")
	ErrFailedToUploadFile = response.NewError(500, "failed to upload file")
)
