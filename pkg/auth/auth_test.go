// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestEncryptAndCompare(t *testing.T) {
	hashed, err := EncryptWithCost("Vaccine@2025", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Vaccine@2025", hashed)

	assert.NoError(t, Compare(hashed, "Vaccine@2025"))
	assert.ErrorIs(t, Compare(hashed, "vaccine@2025"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestEncryptWithCost_Clamp(t *testing.T) {
	hashed, err := EncryptWithCost("secret", 1)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
