package domain

import "errors"

var (
	ErrNotFound      = errors.New("resource not found")
	ErrFileNotFound  = errors.New("file not found on disk")
	ErrOCRTimeout    = errors.New("ocr exceeded time budget")
	ErrOCRFailed     = errors.New("ocr engine invocation failed")
	ErrClassifyAPI   = errors.New("classification API call failed")
	ErrEmptyResponse = errors.New("classification API returned no candidates")
)
