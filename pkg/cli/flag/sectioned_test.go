// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package flag

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestNamedFlagSets(t *testing.T) {
	var nfs NamedFlagSets
	nfs.FlagSet("mysql").String("mysql.host", "127.0.0.1:3306", "MySQL service host address.")
	nfs.FlagSet("redis").Int("redis.port", 6379, "Redis port.")
	nfs.FlagSet("empty")
	nfs.FlagSet("mysql").String("mysql.database", "vaxcenter", "Database name.")

	assert.Equal(t, []string{"mysql", "redis", "empty"}, nfs.Order)

	var buf bytes.Buffer
	PrintSections(&buf, nfs, 0)
	out := buf.String()
	assert.Contains(t, out, "Mysql flags:")
	assert.Contains(t, out, "--mysql.database")
	assert.Contains(t, out, "Redis flags:")
	assert.NotContains(t, out, "Empty flags:")
}

func TestWordSepNormalizeFunc(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetNormalizeFunc(WordSepNormalizeFunc)
	v := fs.String("bind-port", "", "")

	assert.NoError(t, fs.Parse([]string{"--bind_port=8080"}))
	assert.Equal(t, "8080", *v)
}
