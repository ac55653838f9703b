// Package service implements the operations behind the watchlist pages and
// administrative commands.
package service

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
