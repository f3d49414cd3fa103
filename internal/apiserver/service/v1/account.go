// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"strings"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/event"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/store"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/auth"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
)

// invalidCredentials 邮箱不存在和密码错误返回同一句话
const invalidCredentials = "Invalid email or password"

// AccountSrv 账号业务
type AccountSrv interface {
	// SignUp 返回的账号不含密码
	SignUp(ctx context.Context, req *v1.SignUpRequest) (*v1.Account, error)
	// Authenticate 校验邮箱和密码，成功后刷新登录时间
	Authenticate(ctx context.Context, email, password string) (*v1.Account, error)
	Get(ctx context.Context, email string) (*v1.Account, error)
}

var _ AccountSrv = (*accountService)(nil)

type accountService struct {
	store     store.Factory
	publisher event.Publisher
}

func newAccounts(s *service) *accountService {
	return &accountService{
		store:     s.store,
		publisher: s.publisher,
	}
}

func (a *accountService) SignUp(ctx context.Context, req *v1.SignUpRequest) (*v1.Account, error) {
	division, ok := v1.LookupDivision(req.Division)
	if !ok {
		return nil, errors.WithCode(code.ErrDivisionNotFound, "Division %s not found", req.Division)
	}
	district, ok := canonicalDistrict(division, req.District)
	if !ok {
		return nil, errors.WithCode(code.ErrDistrictMismatch, "%s is not a district of %s division", req.District, division.Name)
	}

	account := req.Account()
	account.Name = strings.TrimSpace(account.Name)
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	if _, err := a.store.Accounts().Get(ctx, account.Email); err == nil {
		return nil, errors.WithCode(code.ErrAccountAlreadyExist, "An account with email %s already exists", account.Email)
	} else if !errors.IsCode(err, code.ErrAccountNotFound) {
		return nil, err
	}
	account.Division = division.Name
	account.District = district

	hashed, err := auth.Encrypt(req.Password)
	if err != nil {
		return nil, errors.WrapC(err, code.ErrEncrypt, "%s", err.Error())
	}
	account.Password = hashed

	if err := a.store.Accounts().Create(ctx, account); err != nil {
		return nil, err
	}

	log.L(ctx).Infow("Account created", "accountID", account.ID, "role", account.Role, "division", account.Division)
	a.publish(ctx, event.AccountCreated, account)

	return account.Public(), nil
}

func (a *accountService) Authenticate(ctx context.Context, email, password string) (*v1.Account, error) {
	account, err := a.store.Accounts().Get(ctx, email)
	if err != nil {
		if errors.IsCode(err, code.ErrAccountNotFound) {
			return nil, errors.WrapC(err, code.ErrUnauthorized, invalidCredentials)
		}
		return nil, err
	}

	if err := account.Compare(password); err != nil {
		return nil, errors.WrapC(err, code.ErrUnauthorized, invalidCredentials)
	}

	if err := a.store.Accounts().UpdateLoginedAt(ctx, account.ID); err != nil {
		log.L(ctx).Warnw("Failed to update login time", "accountID", account.ID, "error", err)
	}
	a.publish(ctx, event.AccountSignedIn, account)

	return account, nil
}

func (a *accountService) Get(ctx context.Context, email string) (*v1.Account, error) {
	account, err := a.store.Accounts().Get(ctx, email)
	if err != nil {
		return nil, err
	}
	return account.Public(), nil
}

// publish 事件发送失败不影响请求结果
func (a *accountService) publish(ctx context.Context, t event.Type, account *v1.Account) {
	if err := a.publisher.Publish(ctx, event.NewAccountEvent(t, account)); err != nil {
		log.L(ctx).Warnw("Failed to publish account event", "type", t, "accountID", account.ID, "error", err)
	}
}

func canonicalDistrict(division v1.Division, district string) (string, bool) {
	district = strings.TrimSpace(district)
	for _, name := range division.Districts {
		if strings.EqualFold(name, district) {
			return name, true
		}
	}
	return "", false
}
