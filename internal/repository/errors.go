// Package repository implements the persistence layer over MySQL.  Each
// entity has its own repo type bound to a *sql.DB.  The sentinel errors
// below let the service layer distinguish failure scenarios without
// depending on database/sql: repositories translate sql.ErrNoRows and
// driver duplicate-key errors into these values at the boundary.
package repository

import "errors"

// ErrUserNotFound is returned when no user row matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrProductNotFound is returned when no product row matches the lookup.
var ErrProductNotFound = errors.New("product not found")

// ErrReviewNotFound is returned when no review exists for a
// (product, user) pair.  The review service relies on it to decide
// whether an insert may proceed.
var ErrReviewNotFound = errors.New("review not found")

// ErrEmailExists is returned when an insert collides with the unique
// email index on users.
var ErrEmailExists = errors.New("email already registered")

// ErrAlreadySold is returned when the conditional sold update matches no
// row because the product has already been purchased.  The purchase
// transition is one-way; this error is how a losing concurrent buyer
// finds out.
var ErrAlreadySold = errors.New("product already sold")
