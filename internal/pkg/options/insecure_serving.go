// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package options

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/internal/pkg/server"
)

// InsecureServingOptions 不带 TLS 的 HTTP 监听地址
type InsecureServingOptions struct {
	BindAddress string `json:"bind-address" mapstructure:"bind-address"`
	BindPort    int    `json:"bind-port"    mapstructure:"bind-port"`
}

func NewInsecureServingOptions() *InsecureServingOptions {
	return &InsecureServingOptions{
		BindAddress: "127.0.0.1",
		BindPort:    8080,
	}
}

// ApplyTo 写入服务配置
func (s *InsecureServingOptions) ApplyTo(c *server.Config) error {
	c.InsecureServing = &server.InsecureServingInfo{
		Address: net.JoinHostPort(s.BindAddress, strconv.Itoa(s.BindPort)),
	}
	return nil
}

// Validate 端口必须在 1~65535 之间
func (s *InsecureServingOptions) Validate() []error {
	var errs []error

	if s.BindPort < 1 || s.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("--insecure.bind-port %v must be between 1 and 65535, inclusive", s.BindPort))
	}
	if net.ParseIP(s.BindAddress) == nil {
		errs = append(errs, fmt.Errorf("--insecure.bind-address %q is not a valid IP address", s.BindAddress))
	}

	return errs
}

func (s *InsecureServingOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.BindAddress, "insecure.bind-address", s.BindAddress, ""+
		"The IP address on which to serve the --insecure.bind-port "+
		"(set to 0.0.0.0 for all IPv4 interfaces and :: for all IPv6 interfaces).")
	fs.IntVar(&s.BindPort, "insecure.bind-port", s.BindPort, ""+
		"The port on which to serve unsecured, unauthenticated access.")
}
