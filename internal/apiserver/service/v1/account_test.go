// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/event"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/apiserver/store"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/code"
	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
)

type fakeFactory struct {
	mu       sync.Mutex
	accounts map[string]*v1.Account
	nextID   uint64
	logins   int
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{accounts: map[string]*v1.Account{}}
}

func (f *fakeFactory) Accounts() store.AccountStore { return f }
func (f *fakeFactory) Close() error                 { return nil }

func (f *fakeFactory) Create(_ context.Context, account *v1.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	email := strings.ToLower(account.Email)
	if _, ok := f.accounts[email]; ok {
		return errors.WithCode(code.ErrAccountAlreadyExist, "An account with email %s already exists", email)
	}
	f.nextID++
	account.ID = f.nextID
	account.Email = email
	copied := *account
	f.accounts[email] = &copied
	return nil
}

func (f *fakeFactory) Get(_ context.Context, email string) (*v1.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[strings.ToLower(email)]
	if !ok {
		return nil, errors.WithCode(code.ErrAccountNotFound, "Account %s not found", email)
	}
	copied := *account
	return &copied, nil
}

func (f *fakeFactory) GetByID(ctx context.Context, id uint64) (*v1.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, account := range f.accounts {
		if account.ID == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, errors.WithCode(code.ErrAccountNotFound, "Account %d not found", id)
}

func (f *fakeFactory) UpdateLoginedAt(_ context.Context, _ uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	return nil
}

type recordingPublisher struct {
	events []*event.AccountEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e *event.AccountEvent) error {
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func signUpRequest() *v1.SignUpRequest {
	return &v1.SignUpRequest{
		Name:     " Karim Ahmed ",
		Email:    "Karim@Example.com",
		Password: "Str0ng!Pass",
		Role:     v1.RoleVaccinator,
		Division: "chattogram",
		District: "cox's bazar",
	}
}

func TestAccountService_SignUp(t *testing.T) {
	factory := newFakeFactory()
	publisher := &recordingPublisher{}
	srv := NewService(factory, publisher).Accounts()

	account, err := srv.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	assert.Empty(t, account.Password, "返回值不包含密码")
	assert.Equal(t, "Karim Ahmed", account.Name)
	assert.Equal(t, "Chattogram", account.Division)
	assert.Equal(t, "Cox's Bazar", account.District)
	assert.Nil(t, account.LoginedAt, "注册不算登录")

	stored, err := factory.Get(context.Background(), "karim@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng!Pass", stored.Password)
	assert.NoError(t, stored.Compare("Str0ng!Pass"))

	require.Len(t, publisher.events, 1)
	assert.Equal(t, event.AccountCreated, publisher.events[0].Type)
}

func TestAccountService_SignUpErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *v1.SignUpRequest)
		wantCode int
	}{
		{
			name:     "未知行政区",
			mutate:   func(r *v1.SignUpRequest) { r.Division = "Atlantis" },
			wantCode: code.ErrDivisionNotFound,
		},
		{
			name:     "地区不属于行政区",
			mutate:   func(r *v1.SignUpRequest) { r.District = "Sylhet" },
			wantCode: code.ErrDistrictMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewService(newFakeFactory(), nil).Accounts()
			req := signUpRequest()
			tt.mutate(req)

			_, err := srv.SignUp(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.wantCode))
		})
	}
}

func TestAccountService_SignUpDuplicate(t *testing.T) {
	srv := NewService(newFakeFactory(), nil).Accounts()

	_, err := srv.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	_, err = srv.SignUp(context.Background(), signUpRequest())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, code.ErrAccountAlreadyExist))
	assert.Equal(t, 409, errors.GetHTTPStatus(err))
}

func TestAccountService_Authenticate(t *testing.T) {
	factory := newFakeFactory()
	publisher := &recordingPublisher{}
	srv := NewService(factory, publisher).Accounts()

	_, err := srv.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	account, err := srv.Authenticate(context.Background(), "karim@example.com", "Str0ng!Pass")
	require.NoError(t, err)
	assert.Equal(t, v1.RoleVaccinator, account.Role)
	assert.Equal(t, 1, factory.logins)
	require.Len(t, publisher.events, 2)
	assert.Equal(t, event.AccountSignedIn, publisher.events[1].Type)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "密码错误", email: "karim@example.com", password: "wrong"},
		{name: "账号不存在", email: "nobody@example.com", password: "Str0ng!Pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.Authenticate(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, code.ErrUnauthorized))
			assert.Equal(t, invalidCredentials, errors.GetMessage(err))
		})
	}
}

func TestAccountService_Get(t *testing.T) {
	srv := NewService(newFakeFactory(), nil).Accounts()

	_, err := srv.Get(context.Background(), "missing@example.com")
	assert.True(t, errors.IsCode(err, code.ErrAccountNotFound))

	_, err = srv.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	account, err := srv.Get(context.Background(), "KARIM@example.com")
	require.NoError(t, err)
	assert.Empty(t, account.Password)
}
