package model

import "errors"

var (
	ErrFavouriteNotFound = errors.New("favourite not found")
	ErrUnsupportedImage  = errors.New("unsupported background image format")
	ErrImageTooLarge     = errors.New("background image exceeds the configured size limit")
)
