package export

import "errors"

var (
	ErrJobNotFound     = errors.New("export job not found")
	ErrFileNotReady    = errors.New("export file is not ready")
	ErrNothingToRender = errors.New("no entries match the export filter")
)
