package service

import "errors"

var (
	ErrInvalidInput         = errors.New("username and password are required")
	ErrDuplicateUsername    = errors.New("registration failed: username already exists")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
	ErrUnknownSubject       = errors.New("unknown token subject")
	ErrPostNotFound         = errors.New("post not found")
	ErrForbidden            = errors.New("not authorized to modify this post")
	ErrInternalServer       = errors.New("internal server error")
)
