// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package event 账号事件的发布。没有配置 kafka 时使用空实现。
package event

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	genericoptions "github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/options"
	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/json"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
)

// Type 事件类型，同时写入消息头
type Type string

const (
	AccountCreated  Type = "account.created"
	AccountSignedIn Type = "account.signed_in"
)

const headerEventType = "event-type"

// AccountEvent 消息体，不包含密码
type AccountEvent struct {
	ID         string       `json:"id"`
	Type       Type         `json:"type"`
	AccountID  uint64       `json:"account_id"`
	Email      string       `json:"email"`
	Role       v1.StaffRole `json:"role"`
	Division   string       `json:"division"`
	District   string       `json:"district"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewAccountEvent 由账号生成事件
func NewAccountEvent(t Type, account *v1.Account) *AccountEvent {
	return &AccountEvent{
		ID:         uuid.New().String(),
		Type:       t,
		AccountID:  account.ID,
		Email:      account.Email,
		Role:       account.Role,
		Division:   account.Division,
		District:   account.District,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher 账号事件发布者
type Publisher interface {
	Publish(ctx context.Context, e *AccountEvent) error
	Close() error
}

// messageWriter *kafka.Writer 的子集
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher 按账号 ID 分区，保证同一账号的事件有序
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher 只创建 writer，首次发送时才连接 broker
func NewKafkaPublisher(opts *genericoptions.KafkaOptions) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(opts.Brokers...),
		Topic:                  opts.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequiredAcks(opts.RequiredAcks),
		BatchTimeout:           opts.BatchTimeout,
		WriteTimeout:           opts.WriteTimeout,
		AllowAutoTopicCreation: true,
		ErrorLogger:            kafka.LoggerFunc(log.Errorf),
	}

	return &KafkaPublisher{writer: writer, topic: opts.Topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e *AccountEvent) error {
	value, err := json.Marshal(e)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(e.AccountID, 10)),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(e.Type)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type nopPublisher struct{}

// NewNopPublisher 丢弃所有事件
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(ctx context.Context, e *AccountEvent) error {
	log.L(ctx).Debugw("Account event dropped, kafka is not configured", "type", e.Type, "accountID", e.AccountID)
	return nil
}

func (nopPublisher) Close() error { return nil }

// NewPublisher 配置了 broker 时返回 kafka 实现
func NewPublisher(opts *genericoptions.KafkaOptions) Publisher {
	if opts == nil || !opts.Enabled() {
		return NewNopPublisher()
	}
	return NewKafkaPublisher(opts)
}
