package media

import "errors"

var (
	ErrLogoNotFound    = errors.New("company logo not found")
	ErrPictureNotFound = errors.New("profile picture not found")
	ErrNoImageProvided = errors.New("no image file or data provided")
)
