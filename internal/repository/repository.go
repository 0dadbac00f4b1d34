// Package repository defines typed persistence interfaces per entity with
// GORM-backed implementations. Services depend on the interfaces only, so
// tests can substitute an in-memory sqlite database (or fakes) freely.
package repository

import "errors"

// ErrNotFound is returned by every repository when the requested record does
// not exist. Implementations translate their driver's sentinel to this one
// so services never import storage packages.
var ErrNotFound = errors.New("record not found")
