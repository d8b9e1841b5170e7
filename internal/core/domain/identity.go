package domain

// Identity is the authenticated caller reconstructed from a validated token.
// It lives for exactly one request and is never persisted.
type Identity struct {
	UserID int64
	Name   string
	Email  string
	Role   Role
}
