package db

import "errors"

var (
	// ErrNotFound is returned when a referenced Author, Group or Post
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoSession is returned when a session token is not registered.
	ErrNoSession = errors.New("no session")
)
