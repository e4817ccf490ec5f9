package model

import "errors"

var (
	ErrDuplicateName    = errors.New("a creature with this name already exists")
	ErrCreatureNotFound = errors.New("creature not found")
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrImageTooLarge    = errors.New("image exceeds the configured size limit")
	ErrInvalidPageLimit = errors.New("page and limit must be positive")
)
