// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// KafkaOptions 账号事件投递参数，Brokers 为空时不投递
type KafkaOptions struct {
	Brokers      []string      `json:"brokers"       mapstructure:"brokers"`
	Topic        string        `json:"topic"         mapstructure:"topic"`
	RequiredAcks int           `json:"required-acks" mapstructure:"required-acks"`
	BatchTimeout time.Duration `json:"batch-timeout" mapstructure:"batch-timeout"`
	WriteTimeout time.Duration `json:"write-timeout" mapstructure:"write-timeout"`
}

func NewKafkaOptions() *KafkaOptions {
	return &KafkaOptions{
		Brokers:      []string{},
		Topic:        "vaxcenter.account-events",
		RequiredAcks: -1,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}
}

// Enabled 是否配置了 broker
func (o *KafkaOptions) Enabled() bool {
	return len(o.Brokers) > 0
}

func (o *KafkaOptions) Validate() []error {
	var errs []error

	if o.Enabled() && o.Topic == "" {
		errs = append(errs, fmt.Errorf("--kafka.topic is required when --kafka.brokers is set"))
	}
	if o.RequiredAcks < -1 || o.RequiredAcks > 1 {
		errs = append(errs, fmt.Errorf("--kafka.required-acks must be -1, 0 or 1"))
	}

	return errs
}

func (o *KafkaOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.Brokers, "kafka.brokers", o.Brokers, "Kafka broker addresses. Empty disables account events.")
	fs.StringVar(&o.Topic, "kafka.topic", o.Topic, "Topic that account events are written to.")
	fs.IntVar(&o.RequiredAcks, "kafka.required-acks", o.RequiredAcks, "Acks required from brokers: -1 all, 0 none, 1 leader.")
	fs.DurationVar(&o.BatchTimeout, "kafka.batch-timeout", o.BatchTimeout, "Time limit on how often incomplete batches are flushed.")
	fs.DurationVar(&o.WriteTimeout, "kafka.write-timeout", o.WriteTimeout, "Timeout for a single write.")
}
