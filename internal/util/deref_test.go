// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeref(t *testing.T) {
	s := "hello"
	assert.Equal(t, "hello", Deref(&s))
	assert.Equal(t, "", Deref[string](nil))
	assert.Equal(t, 0, Deref[int](nil))
}

func TestRef(t *testing.T) {
	p := Ref(42)
	assert.NotNil(t, p)
	assert.Equal(t, 42, *p)
}

func TestIsNil(t *testing.T) {
	var p *string
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(p))

	s := "x"
	assert.False(t, IsNil(&s))
	assert.False(t, IsNil(42))
}
