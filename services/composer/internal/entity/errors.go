package entity

import "errors"

var (
	ErrUnauthenticated  = errors.New("user is not logged in")
	ErrPostListNotFound = errors.New("post list not found")
	ErrPostListConflict = errors.New("post list changed since it was read")
	ErrNotMarkdownMode  = errors.New("preview is only available in markdown mode")
)
