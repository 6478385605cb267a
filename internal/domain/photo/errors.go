package photo

import "errors"

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrNotOwner      = errors.New("not the photo owner")
)
