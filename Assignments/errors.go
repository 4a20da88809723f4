package Assignments

import "errors"

// Service-boundary failures. Controllers translate these to HTTP statuses;
// Forbidden never reveals more than "you may not access this".
var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("access denied")
)
