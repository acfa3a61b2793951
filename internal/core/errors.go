package core

import "errors"

// Kategori error yang dipakai semua paket domain. Handler HTTP memetakan
// sentinel ini ke status code; paket domain membungkus dengan %w.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrTransient         = errors.New("transient failure, retry")
	ErrUnauthorized      = errors.New("unauthorized")
)
