// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package app 基于 cobra/viper 的应用骨架：分组参数、配置文件、环境变量、版本参数。
package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	cliflag "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/cli/flag"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/log"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/version"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/version/verflag"
)

var progressMessage = color.GreenString("==>")

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// App 命令行应用
type App struct {
	basename    string
	name        string
	description string
	options     CliOptions
	runFunc     RunFunc
	silence     bool
	noVersion   bool
	noConfig    bool
	commands    []*Command
	args        cobra.PositionalArgs
	cmd         *cobra.Command
	viper       *viper.Viper
}

// Option 配置 App
type Option func(*App)

// RunFunc 应用启动回调
type RunFunc func(basename string) error

func WithOptions(opt CliOptions) Option {
	return func(a *App) {
		a.options = opt
	}
}

func WithRunFunc(run RunFunc) Option {
	return func(a *App) {
		a.runFunc = run
	}
}

func WithDescription(desc string) Option {
	return func(a *App) {
		a.description = desc
	}
}

// WithSilence 不打印启动信息和配置
func WithSilence() Option {
	return func(a *App) {
		a.silence = true
	}
}

func WithNoVersion() Option {
	return func(a *App) {
		a.noVersion = true
	}
}

// WithNoConfig 不提供 --config 参数，也不读取配置文件
func WithNoConfig() Option {
	return func(a *App) {
		a.noConfig = true
	}
}

func WithValidArgs(args cobra.PositionalArgs) Option {
	return func(a *App) {
		a.args = args
	}
}

// WithDefaultValidArgs 不接受位置参数
func WithDefaultValidArgs() Option {
	return func(a *App) {
		a.args = func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if len(arg) > 0 {
					return fmt.Errorf("%q does not take any arguments, got %q", cmd.CommandPath(), args)
				}
			}
			return nil
		}
	}
}

// NewApp 创建应用，basename 同时决定配置文件名和环境变量前缀
func NewApp(name string, basename string, opts ...Option) *App {
	a := &App{
		name:     name,
		basename: basename,
		viper:    viper.New(),
	}

	for _, o := range opts {
		o(a)
	}

	a.buildCommand()

	return a
}

// AddCommands 添加子命令
func (a *App) AddCommands(cmds ...*Command) {
	a.commands = append(a.commands, cmds...)
	for _, c := range cmds {
		a.cmd.AddCommand(c.cobraCommand())
	}
}

func (a *App) buildCommand() {
	cmd := cobra.Command{
		Use:   FormatBaseName(a.basename),
		Short: a.name,
		Long:  a.description,
		// 出错时不打印用法，错误由 Run 统一输出
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          a.args,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = true
	cliflag.InitFlags(cmd.Flags())

	if a.runFunc != nil {
		cmd.RunE = a.runCommand
	}

	var namedFlagSets cliflag.NamedFlagSets
	if a.options != nil {
		namedFlagSets = a.options.Flags()
		fs := cmd.PersistentFlags()
		for _, f := range namedFlagSets.FlagSets {
			fs.AddFlagSet(f)
		}
	}

	if !a.noVersion {
		verflag.AddFlags(namedFlagSets.FlagSet("global"))
	}
	if !a.noConfig {
		addConfigFlag(a.viper, a.basename, namedFlagSets.FlagSet("global"))
	}
	cmd.PersistentFlags().AddFlagSet(namedFlagSets.FlagSet("global"))

	cmd.SetUsageFunc(func(cmd *cobra.Command) error {
		fmt.Fprintf(cmd.OutOrStderr(), "%s\n  %s\n", color.CyanString("Usage:"), cmd.UseLine())
		if cmd.HasAvailableSubCommands() {
			fmt.Fprintf(cmd.OutOrStderr(), "\n%s\n", color.CyanString("Available Commands:"))
			for _, c := range cmd.Commands() {
				if c.IsAvailableCommand() {
					fmt.Fprintf(cmd.OutOrStderr(), "  %s %s\n", color.GreenString("%-12s", c.Name()), c.Short)
				}
			}
		}
		cliflag.PrintSections(cmd.OutOrStderr(), namedFlagSets, terminalWidth())
		return nil
	})

	a.cmd = &cmd
}

// terminalWidth 标准输出不是终端时返回 0，参数说明不折行
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

// Command 返回底层 cobra 命令，测试中用于注入参数
func (a *App) Command() *cobra.Command {
	return a.cmd
}

// Run 执行应用，失败时以红色输出错误信息并以 1 退出
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		PrintError(err)
		os.Exit(1)
	}
}

func (a *App) runCommand(cmd *cobra.Command, args []string) error {
	if !a.noVersion {
		verflag.PrintAndExitIfRequested()
	}

	if err := a.loadOptions(cmd); err != nil {
		return err
	}

	if !a.silence {
		log.Infof("%v Starting %s ...", progressMessage, a.name)
		if !a.noVersion {
			log.Infof("%v Version: `%s`", progressMessage, version.Get().ToJSON())
		}
		if !a.noConfig {
			log.Infof("%v Config file used: `%s`", progressMessage, a.viper.ConfigFileUsed())
			printConfig(cmd.OutOrStdout(), a.viper)
		}
		cliflag.PrintFlags(cmd.Flags())
	}

	if a.runFunc != nil {
		return a.runFunc(a.basename)
	}

	return nil
}

// loadOptions 合并配置文件、环境变量和命令行参数，然后补全、校验
func (a *App) loadOptions(cmd *cobra.Command) error {
	if err := a.viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if !a.noConfig {
		if err := readConfig(a.viper, a.basename); err != nil {
			return err
		}
	}
	if a.options == nil {
		return nil
	}
	if err := a.viper.Unmarshal(a.options); err != nil {
		return err
	}

	return a.applyOptionRules()
}

func (a *App) applyOptionRules() error {
	if completeableOptions, ok := a.options.(CompleteableOptions); ok {
		if err := completeableOptions.Complete(); err != nil {
			return err
		}
	}

	if errs := a.options.Validate(); len(errs) != 0 {
		return errors.NewAggregate(errs)
	}

	if printableOptions, ok := a.options.(PrintableOptions); ok && !a.silence {
		log.Infof("%v Config: `%s`", progressMessage, printableOptions.String())
	}

	return nil
}
