// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package store

import "errors"

// Sentinel errors returned by Store operations.
var (
	ErrRecordNotFound        = errors.New("record not found")
	ErrConstraintFailed      = errors.New("constraint failed")
	ErrUniqueConstraintFailed = errors.New("unique constraint failed")
	ErrEntryAlreadyExists    = errors.New("entry already exists")
)
