package services

import "errors"

var (
	// ErrValidation covers malformed entry input: unset date or blank title.
	ErrValidation = errors.New("invalid entry input")
	// ErrNotFound means no entry exists at the requested id.
	ErrNotFound = errors.New("entry not found")
	// ErrNotOwner means the entry exists but belongs to another principal.
	ErrNotOwner = errors.New("entry owned by another user")
	// ErrUpload covers transport failures while storing an attachment blob.
	ErrUpload = errors.New("attachment upload failed")
)
