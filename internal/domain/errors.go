package domain

import "errors"

var (
	ErrRawUnreadable     = errors.New("raw snapshot is not readable")
	ErrStateCorrupt      = errors.New("persisted state is corrupt")
	ErrComponentNotFound = errors.New("component not found")
	ErrNotEmpty          = errors.New("tray is not currently empty")
)
