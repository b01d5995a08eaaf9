package domain

import "errors"

// Sentinel errors for library operations
var (
	// ErrTitleNotFound indicates the requested title does not exist
	ErrTitleNotFound = errors.New("title not found")

	// ErrSessionNotFound indicates the requested reading session does not exist
	ErrSessionNotFound = errors.New("reading session not found")

	// ErrBookmarkNotFound indicates the requested bookmark does not exist
	ErrBookmarkNotFound = errors.New("bookmark not found")

	// ErrSessionActive indicates a reading session is already running
	ErrSessionActive = errors.New("a reading session is already active")

	// ErrNoActiveSession indicates no reading session is currently running
	ErrNoActiveSession = errors.New("no active reading session")
)
