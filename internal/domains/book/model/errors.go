package model

import "errors"

var (
	ErrBookNotFound = errors.New("book not found")
	ErrISBNExists   = errors.New("a book with this ISBN already exists")
)
