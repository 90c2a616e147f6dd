package service

import "errors"

var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("docnav: client is closed")

	// ErrUnknownMenu indicates a menu name other than "nav" or "sidebar".
	ErrUnknownMenu = errors.New("unknown menu")
)
