package domain

import "errors"

// Sentinel errors for store and tree operations. Every failure surfaces as
// one of these kinds; callers discriminate with errors.Is.
var (
	// ErrPlaylistNotFound indicates the playlist id is absent from the
	// addressed store(s)
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrFolderNotFound indicates a folder id did not resolve anywhere in
	// the tree
	ErrFolderNotFound = errors.New("folder not found")

	// ErrInvalidPath indicates a slash path failed to resolve
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidIndex indicates an out-of-bounds insertion index
	ErrInvalidIndex = errors.New("index out of range")

	// ErrItemNotFound indicates an item id is absent where one is required
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateAudio indicates a folder already holds an item with the
	// same media reference
	ErrDuplicateAudio = errors.New("duplicate audio reference in folder")

	// ErrDuplicateID indicates a supplied tree carries the same node id twice
	ErrDuplicateID = errors.New("duplicate node id in tree")
)
