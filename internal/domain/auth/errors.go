package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrSessionNotFound     = errors.New("session not found")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")
	ErrOAuthEmailNotFound  = errors.New("no account registered for this google account")
)
