// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package mysql

import (
	"context"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/store"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/db"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
)

func newTestFactory(t *testing.T) store.Factory {
	t.Helper()

	gdb, err := db.Open(sqlite.Open("file::memory:"), &db.Options{MaxOpenConnections: 1, LogLevel: 1})
	require.NoError(t, err)

	factory, err := NewFactory(gdb)
	require.NoError(t, err)
	t.Cleanup(func() { _ = factory.Close() })

	return factory
}

func newAccount(email string) *v1.Account {
	return &v1.Account{
		Name:     "Rahim Uddin",
		Email:    email,
		Password: "$2a$10$hash",
		Role:     v1.RoleNurse,
		Division: "Dhaka",
		District: "Gazipur",
	}
}

func TestAccounts_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	accounts := newTestFactory(t).Accounts()

	account := newAccount("  Rahim@Example.com ")
	require.NoError(t, accounts.Create(ctx, account))
	assert.NotZero(t, account.ID)
	assert.Equal(t, "rahim@example.com", account.Email)

	got, err := accounts.Get(ctx, "RAHIM@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.Equal(t, v1.RoleNurse, got.Role)

	byID, err := accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "rahim@example.com", byID.Email)
}

func TestAccounts_DefaultRole(t *testing.T) {
	ctx := context.Background()
	accounts := newTestFactory(t).Accounts()

	account := newAccount("volunteer@example.com")
	account.Role = ""
	require.NoError(t, accounts.Create(ctx, account))

	got, err := accounts.Get(ctx, "volunteer@example.com")
	require.NoError(t, err)
	assert.Equal(t, v1.RoleVolunteer, got.Role)
}

func TestAccounts_Duplicate(t *testing.T) {
	ctx := context.Background()
	accounts := newTestFactory(t).Accounts()

	require.NoError(t, accounts.Create(ctx, newAccount("dup@example.com")))

	err := accounts.Create(ctx, newAccount("DUP@example.com"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, code.ErrAccountAlreadyExist))
}

func TestAccounts_NotFound(t *testing.T) {
	ctx := context.Background()
	accounts := newTestFactory(t).Accounts()

	_, err := accounts.Get(ctx, "missing@example.com")
	assert.True(t, errors.IsCode(err, code.ErrAccountNotFound))

	_, err = accounts.GetByID(ctx, 42)
	assert.True(t, errors.IsCode(err, code.ErrAccountNotFound))

	err = accounts.UpdateLoginedAt(ctx, 42)
	assert.True(t, errors.IsCode(err, code.ErrAccountNotFound))
}

func TestAccounts_UpdateLoginedAt(t *testing.T) {
	ctx := context.Background()
	accounts := newTestFactory(t).Accounts()

	account := newAccount("login@example.com")
	require.NoError(t, accounts.Create(ctx, account))
	assert.Nil(t, account.LoginedAt)

	require.NoError(t, accounts.UpdateLoginedAt(ctx, account.ID))

	got, err := accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LoginedAt)
	assert.False(t, got.LoginedAt.IsZero())
}

func TestGetMySQLFactoryOr_NilOptions(t *testing.T) {
	_, err := GetMySQLFactoryOr(nil)
	assert.Error(t, err)
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, isDuplicate(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicate(errors.Wrap(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, "create")))
	assert.False(t, isDuplicate(&gomysql.MySQLError{Number: 1045}))
	assert.False(t, isDuplicate(gorm.ErrRecordNotFound))
}
