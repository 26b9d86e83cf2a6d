package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrEmptyQuestionSet   = errors.New("no questions available")
	ErrAttemptNotFound    = errors.New("attempt not found")
)
