package repository

import "errors"

var (
	// ErrNotFound is returned when no entity matches the requested ID.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when an appended entity reuses a stored ID.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrCorruptData is returned when stored bytes cannot be decoded.
	ErrCorruptData = errors.New("corrupt stored data")

	// ErrStorageRead is returned when the backend cannot be read.
	ErrStorageRead = errors.New("storage read failed")

	// ErrStorageWrite is returned when the backend rejects a write.
	ErrStorageWrite = errors.New("storage write failed")
)
