package domain

import "errors"

var (
	ErrCollectionNotFound = errors.New("collection does not exist")
	ErrCollectionExists   = errors.New("collection already exists")
	ErrIndexExists        = errors.New("index already exists")
	ErrIndexNotFound      = errors.New("index does not exist")
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrInvalidMatcher     = errors.New("invalid matcher")
	ErrInvalidPath        = errors.New("invalid field path")
)
