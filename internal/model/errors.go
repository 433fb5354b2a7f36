package model

import "errors"

// Common errors used across the application
var (
	// Registration errors
	ErrEmptyName         = errors.New("player name is empty")
	ErrNameTooLong       = errors.New("player name is too long")
	ErrInvalidCharacters = errors.New("player name contains control characters")
	ErrDuplicateName     = errors.New("player name is already taken")

	// Lookup errors
	ErrPlayerNotFound = errors.New("player not found")
)
