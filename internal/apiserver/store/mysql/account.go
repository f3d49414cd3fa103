// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package mysql

import (
	"context"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/metrics"
	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
)

type accounts struct {
	db *gorm.DB
}

func newAccounts(ds *datastore) *accounts {
	return &accounts{ds.db}
}

// Create 邮箱统一转为小写后入库
func (a *accounts) Create(ctx context.Context, account *v1.Account) (err error) {
	defer metrics.ObserveAccountOperation("create", time.Now(), &err)

	account.Email = normalizeEmail(account.Email)
	if err = a.db.WithContext(ctx).Create(account).Error; err != nil {
		if isDuplicate(err) {
			return errors.WrapC(err, code.ErrAccountAlreadyExist, "An account with email %s already exists", account.Email)
		}
		return errors.WrapC(err, code.ErrDatabase, "%s", err.Error())
	}

	return nil
}

func (a *accounts) Get(ctx context.Context, email string) (account *v1.Account, err error) {
	defer metrics.ObserveAccountOperation("get", time.Now(), &err)

	account = &v1.Account{}
	err = a.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(account).Error
	if err != nil {
		return nil, notFoundOr(err, "Account %s not found", email)
	}

	return account, nil
}

func (a *accounts) GetByID(ctx context.Context, id uint64) (account *v1.Account, err error) {
	defer metrics.ObserveAccountOperation("get_by_id", time.Now(), &err)

	account = &v1.Account{}
	if err = a.db.WithContext(ctx).First(account, id).Error; err != nil {
		return nil, notFoundOr(err, "Account %d not found", id)
	}

	return account, nil
}

// UpdateLoginedAt 只更新登录时间，不触碰其它字段
func (a *accounts) UpdateLoginedAt(ctx context.Context, id uint64) (err error) {
	defer metrics.ObserveAccountOperation("update_logined_at", time.Now(), &err)

	result := a.db.WithContext(ctx).Model(&v1.Account{}).Where("id = ?", id).Update("logined_at", time.Now())
	if result.Error != nil {
		return errors.WrapC(result.Error, code.ErrDatabase, "%s", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errors.WithCode(code.ErrAccountNotFound, "Account %d not found", id)
	}

	return nil
}

func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.WrapC(err, code.ErrAccountNotFound, format, args...)
	}
	return errors.WrapC(err, code.ErrDatabase, "%s", err.Error())
}

// mysqlDuplicateEntry ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

// isDuplicate TranslateError 未覆盖的方言下仍然识别 MySQL 的唯一键冲突
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *gomysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
