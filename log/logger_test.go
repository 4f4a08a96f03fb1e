// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package log_test

import (
	"testing"

	"confirmate.io/modelrater/log"

	"github.com/stretchr/testify/assert"
)

func TestConfigureValidLevel(t *testing.T) {
	assert.NoError(t, log.Configure("DEBUG"))
	assert.NoError(t, log.Configure("INFO"))
}

func TestConfigureInvalidLevel(t *testing.T) {
	assert.Error(t, log.Configure("NOPE"))
}

func TestParseLevelTrace(t *testing.T) {
	lvl, err := log.ParseLevel("TRACE")
	assert.NoError(t, err)
	assert.Equal(t, log.LevelTrace, lvl)
}
