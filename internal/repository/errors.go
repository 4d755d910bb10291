// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services to distinguish between different failure scenarios without
// inspecting driver error text: ErrNotFound marks a missing row (a valid
// business outcome, not an infrastructure failure), while the two
// uniqueness sentinels report which column collided on registration.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row. Services decide
// whether this becomes a 404 or is swallowed (e.g. optional auth).
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when an insert violates the unique
// username constraint.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when an insert violates the unique email
// constraint.
var ErrEmailExists = errors.New("email already exists")
