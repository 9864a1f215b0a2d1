package auth

import "errors"

var (
	// ErrNoCredentials indicates no session is stored; the user must log in.
	ErrNoCredentials = errors.New("not logged in")

	// ErrTokenExpired indicates the stored bearer token is past its expiry.
	ErrTokenExpired = errors.New("session expired, log in again")

	// ErrMalformedToken indicates the stored token could not be decoded.
	ErrMalformedToken = errors.New("malformed bearer token")
)
