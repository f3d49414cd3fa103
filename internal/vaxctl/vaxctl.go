// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package vaxctl 接种中心 API 的命令行客户端。
// 所有失败都经过 failure.ExtractMessage 转换后输出，服务端返回的 error 字段优先展示。
package vaxctl

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	v1 "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/api/vaxcenter/v1"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/app"
	cliflag "github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/cli/flag"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/errors"
	"github.com/ByteCrister/automating-the-vaccination-process-sub001/pkg/httpclient"
)

const commandDesc = `vaxctl talks to the vaccination center API server.

Sign in to obtain a token, then pass it with --token or $VAXCTL_TOKEN:

  vaxctl signin --email admin@example.com --password 'Vaccine@2025'
  vaxctl me --token <token>`

// TokenResponse 登录与刷新接口的返回
type TokenResponse struct {
	Token  string `json:"token"`
	Expire string `json:"expire"`
}

type ctl struct {
	opts *Options
	out  io.Writer
}

// NewApp 创建 vaxctl 命令
func NewApp(basename string) *app.App {
	return newApp(basename, NewOptions(), os.Stdout)
}

func newApp(basename string, opts *Options, out io.Writer) *app.App {
	c := &ctl{opts: opts, out: out}
	a := app.NewApp("Vaccination Center CLI", basename,
		app.WithOptions(opts),
		app.WithDescription(commandDesc),
		app.WithNoConfig(),
		app.WithSilence(),
	)
	a.AddCommands(
		c.signInCommand(),
		c.signUpCommand(),
		c.signOutCommand(),
		c.refreshCommand(),
		app.NewCommand("me", "Show the signed in account", app.WithCommandRunFunc(c.me)),
		c.metaCommand(),
	)
	return a
}

type signInOptions struct {
	v1.SignInRequest
}

func (o *signInOptions) Flags() (fss cliflag.NamedFlagSets) {
	fs := fss.FlagSet("signin")
	fs.StringVar(&o.Email, "email", "", "Account email.")
	fs.StringVar(&o.Password, "password", "", "Account password.")
	return fss
}

func (o *signInOptions) Validate() []error {
	var errs []error
	if o.Email == "" {
		errs = append(errs, fmt.Errorf("--email is required"))
	}
	if o.Password == "" {
		errs = append(errs, fmt.Errorf("--password is required"))
	}
	return errs
}

func (c *ctl) signInCommand() *app.Command {
	opts := &signInOptions{}
	return app.NewCommand("signin", "Sign in and print a bearer token",
		app.WithCommandOptions(opts),
		app.WithCommandRunFunc(func(args []string) error {
			var resp TokenResponse
			if err := c.postAnonymous("/api/auth/signin", opts.SignInRequest, &resp); err != nil {
				return err
			}
			c.printToken(resp)
			return nil
		}),
	)
}

type signUpOptions struct {
	v1.SignUpRequest
	role string
}

func (o *signUpOptions) Flags() (fss cliflag.NamedFlagSets) {
	fs := fss.FlagSet("signup")
	fs.StringVar(&o.Name, "name", "", "Full name of the staff member.")
	fs.StringVar(&o.Email, "email", "", "Account email.")
	fs.StringVar(&o.Password, "password", "", "Account password.")
	fs.StringVar(&o.role, "role", string(v1.RoleVolunteer), "Staff role, see `vaxctl meta roles`.")
	fs.StringVar(&o.Division, "division", "", "Division of the vaccination center.")
	fs.StringVar(&o.District, "district", "", "District of the vaccination center.")
	return fss
}

// Validate 其余规则由服务端校验，错误信息以服务端为准
func (o *signUpOptions) Validate() []error {
	o.Role = v1.StaffRole(o.role)
	if o.Email == "" {
		return []error{fmt.Errorf("--email is required")}
	}
	return nil
}

func (c *ctl) signUpCommand() *app.Command {
	opts := &signUpOptions{}
	return app.NewCommand("signup", "Create a staff account",
		app.WithCommandOptions(opts),
		app.WithCommandRunFunc(func(args []string) error {
			var account v1.Account
			if err := c.postAnonymous("/api/auth/signup", opts.SignUpRequest, &account); err != nil {
				return err
			}
			c.printAccount(&account)
			return nil
		}),
	)
}

func (c *ctl) signOutCommand() *app.Command {
	return app.NewCommand("signout", "Revoke the current token",
		app.WithCommandRunFunc(func(args []string) error {
			if err := c.post("/api/auth/signout", nil, nil); err != nil {
				return err
			}
			fmt.Fprintln(c.out, color.GreenString("Signed out"))
			return nil
		}),
	)
}

func (c *ctl) refreshCommand() *app.Command {
	return app.NewCommand("refresh", "Exchange the current token for a new one",
		app.WithCommandRunFunc(func(args []string) error {
			var resp TokenResponse
			if err := c.post("/api/auth/refresh", nil, &resp); err != nil {
				return err
			}
			c.printToken(resp)
			return nil
		}),
	)
}

func (c *ctl) me(args []string) error {
	var account v1.Account
	if err := c.get("/v1/accounts/me", &account); err != nil {
		return err
	}
	c.printAccount(&account)
	return nil
}

func (c *ctl) metaCommand() *app.Command {
	cmd := app.NewCommand("meta", "Query reference data")
	cmd.AddCommands(
		app.NewCommand("roles", "List staff roles", app.WithCommandRunFunc(c.roles)),
		app.NewCommand("statuses", "List vaccination center statuses", app.WithCommandRunFunc(c.statuses)),
		app.NewCommand("divisions", "List divisions and their districts", app.WithCommandRunFunc(c.divisions)),
		app.NewCommand("districts", "List districts of a division", app.WithCommandRunFunc(c.districts)),
	)
	return cmd
}

func (c *ctl) roles(args []string) error {
	var options []v1.RoleOption
	if err := c.get("/v1/meta/staff-roles", &options); err != nil {
		return err
	}
	table := newTable("VALUE", "LABEL", "MANAGES CENTER")
	for _, o := range options {
		table.AddRow(o.Value, o.Label, o.ManagesCenter)
	}
	fmt.Fprintln(c.out, table)
	return nil
}

func (c *ctl) statuses(args []string) error {
	var options []v1.CenterStatusOption
	if err := c.get("/v1/meta/center-statuses", &options); err != nil {
		return err
	}
	table := newTable("STATUS", "ACCEPTS APPOINTMENTS")
	for _, o := range options {
		table.AddRow(o.Value, o.AcceptsAppointments)
	}
	fmt.Fprintln(c.out, table)
	return nil
}

func (c *ctl) divisions(args []string) error {
	var divisions []v1.Division
	if err := c.get("/v1/meta/divisions", &divisions); err != nil {
		return err
	}
	table := newTable("DIVISION", "DISTRICTS")
	for _, d := range divisions {
		table.AddRow(d.Name, len(d.Districts))
	}
	fmt.Fprintln(c.out, table)
	return nil
}

func (c *ctl) districts(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("districts requires exactly one division name")
	}
	var districts []string
	path := "/v1/meta/divisions/" + url.PathEscape(args[0]) + "/districts"
	if err := c.get(path, &districts); err != nil {
		return err
	}
	for _, d := range districts {
		fmt.Fprintln(c.out, d)
	}
	return nil
}

func (c *ctl) printToken(resp TokenResponse) {
	table := uitable.New()
	table.AddRow(color.CyanString("Token:"), resp.Token)
	table.AddRow(color.CyanString("Expire:"), resp.Expire)
	fmt.Fprintln(c.out, table)
}

func (c *ctl) printAccount(a *v1.Account) {
	table := uitable.New()
	table.RightAlign(0)
	table.AddRow("id:", a.ID)
	table.AddRow("name:", a.Name)
	table.AddRow("email:", a.Email)
	table.AddRow("role:", a.Role.DisplayName())
	table.AddRow("division:", a.Division)
	table.AddRow("district:", a.District)
	if a.LoginedAt != nil {
		table.AddRow("last sign in:", a.LoginedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(c.out, table)
}

// validate 根命令没有执行函数，全局参数在这里校验
func (c *ctl) validate() error {
	if errs := c.opts.Validate(); len(errs) != 0 {
		return errors.NewAggregate(errs)
	}
	return nil
}

func (c *ctl) client() (*httpclient.Client, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c.opts.Client(), nil
}

func (c *ctl) get(path string, out interface{}) error {
	client, err := c.client()
	if err != nil {
		return err
	}
	return client.Get(context.Background(), path, out)
}

func (c *ctl) post(path string, in, out interface{}) error {
	client, err := c.client()
	if err != nil {
		return err
	}
	return client.Post(context.Background(), path, in, out)
}

// postAnonymous 登录和注册不发送已保存的令牌
func (c *ctl) postAnonymous(path string, in, out interface{}) error {
	if err := c.validate(); err != nil {
		return err
	}
	return c.opts.AnonymousClient().Post(context.Background(), path, in, out)
}

func newTable(header ...interface{}) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow(header...)
	return table
}
