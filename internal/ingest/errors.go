package ingest

import "errors"

// Fatal input errors. Everything else degrades to field defaults.
var (
	ErrEmptyContent        = errors.New("file is empty")
	ErrNotText             = errors.New("file cannot be decoded as text")
	ErrUnsupportedFileType = errors.New("file type is not tabular")
	ErrInsufficientRows    = errors.New("file needs a header and at least one data row")
	ErrUnknownDataType     = errors.New("data type must be campaigns or experiments")
)
