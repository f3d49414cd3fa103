// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package app

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/failure"
)

// Command 应用的子命令
type Command struct {
	usage    string
	desc     string
	options  CliOptions
	commands []*Command
	runFunc  RunCommandFunc
}

// CommandOption 配置 Command
type CommandOption func(*Command)

// RunCommandFunc 子命令回调，args 为位置参数
type RunCommandFunc func(args []string) error

func WithCommandOptions(opt CliOptions) CommandOption {
	return func(c *Command) {
		c.options = opt
	}
}

func WithCommandRunFunc(run RunCommandFunc) CommandOption {
	return func(c *Command) {
		c.runFunc = run
	}
}

// NewCommand 创建子命令
func NewCommand(usage string, desc string, opts ...CommandOption) *Command {
	c := &Command{
		usage: usage,
		desc:  desc,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// AddCommands 添加下级子命令
func (c *Command) AddCommands(cmds ...*Command) {
	c.commands = append(c.commands, cmds...)
}

func (c *Command) cobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   c.usage,
		Short: c.desc,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = false

	for _, command := range c.commands {
		cmd.AddCommand(command.cobraCommand())
	}
	if c.runFunc != nil {
		cmd.RunE = c.runCommand
	}
	if c.options != nil {
		for _, f := range c.options.Flags().FlagSets {
			cmd.Flags().AddFlagSet(f)
		}
	}

	return cmd
}

func (c *Command) runCommand(cmd *cobra.Command, args []string) error {
	if c.options != nil {
		if errs := c.options.Validate(); len(errs) != 0 {
			return fmt.Errorf("%s: invalid options: %v", cmd.CommandPath(), errs)
		}
	}
	return c.runFunc(args)
}

// PrintError 以红色输出失败信息
func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "%v %s\n", color.RedString("Error:"), failure.ExtractMessage(err))
}

// FormatBaseName 去掉 windows 下的 .exe 后缀并转为小写
func FormatBaseName(basename string) string {
	if runtime.GOOS == "windows" {
		basename = strings.ToLower(basename)
		basename = strings.TrimSuffix(basename, ".exe")
	}
	return basename
}
