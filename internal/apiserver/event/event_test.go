// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package event

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	genericoptions "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/options"
	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/json"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testAccount() *v1.Account {
	return &v1.Account{
		ID:       7,
		Email:    "nurse@example.com",
		Password: "$2a$10$secret-hash",
		Role:     v1.RoleNurse,
		Division: "Khulna",
		District: "Jashore",
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "vaxcenter.account-events"}

	e := NewAccountEvent(AccountCreated, testAccount())
	require.NoError(t, p.Publish(context.Background(), e))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "7", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "account.created", string(msg.Headers[0].Value))
	assert.NotContains(t, string(msg.Value), "secret-hash")

	var decoded AccountEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, e.ID, decoded.ID)
	assert.Equal(t, v1.RoleNurse, decoded.Role)
	assert.Equal(t, "Jashore", decoded.District)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	boom := errors.New("leader not available")
	p := &KafkaPublisher{writer: &fakeWriter{err: boom}}

	err := p.Publish(context.Background(), NewAccountEvent(AccountSignedIn, testAccount()))
	assert.ErrorIs(t, err, boom)
}

func TestNewPublisher(t *testing.T) {
	opts := genericoptions.NewKafkaOptions()
	_, isNop := NewPublisher(opts).(nopPublisher)
	assert.True(t, isNop, "没有 broker 时使用空实现")
	assert.NoError(t, NewPublisher(nil).Publish(context.Background(), NewAccountEvent(AccountCreated, testAccount())))

	opts.Brokers = []string{"127.0.0.1:9092"}
	p, ok := NewPublisher(opts).(*KafkaPublisher)
	require.True(t, ok)
	assert.Equal(t, "vaxcenter.account-events", p.topic)
	assert.NoError(t, p.Close())
}
