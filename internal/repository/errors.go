// Package repository implements MySQL-backed stores for users, refresh
// tokens, jobs, applications and notifications. Sentinel errors let the
// handlers map storage failures onto HTTP statuses without inspecting
// driver-specific errors.
package repository

import (
	"errors"
	"strings"
)

// ErrEmailExists is returned when an insert hits the unique index on
// users.email. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup matches no row. Handlers translate
// it into HTTP 404 (or 401 for credential lookups, where "not found" must
// be indistinguishable from "wrong password").
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert hits a uniqueness constraint
// other than users.email, e.g. applying twice to the same job. Handlers
// translate it into HTTP 409.
var ErrDuplicate = errors.New("duplicate record")

// ErrTokenNotFound is returned when a refresh token has no stored row:
// either it was never issued by this server or it was already rotated or
// revoked. Handlers translate it into HTTP 401.
var ErrTokenNotFound = errors.New("refresh token not found")

// isDupKey reports whether err is a MySQL duplicate-key violation (1062).
func isDupKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
