package repository

import "errors"

var (
	// ErrInvalidImageSource indicates a source identifier that cannot be resolved
	ErrInvalidImageSource = errors.New("invalid image source")

	// ErrImageNotFound indicates the image was not found
	ErrImageNotFound = errors.New("image not found")
)
