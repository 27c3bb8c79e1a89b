package model

import "errors"

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("you have already reviewed this book")
	ErrNotOwner        = errors.New("you can only modify your own reviews")
)
