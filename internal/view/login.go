package view

import (
	"context"
	"fmt"

	"github.com/junhoi254/investment-academy/utils"
)

// Login submits credentials once. Success persists the token via the API
// client; failure surfaces the server's detail inline. No refresh, no
// lockout handling.
type Login struct {
	deps Deps
}

func NewLogin(deps Deps) *Login {
	return &Login{deps: deps}
}

func (l *Login) Run(ctx context.Context, phone, password string) error {
	tokens, err := l.deps.API.Login(ctx, utils.FormatPhoneNumber(phone), password)
	if err != nil {
		fmt.Fprintf(l.deps.Out, "Login failed: %v\n", err)
		return err
	}

	name := phone
	if tokens.User != nil && tokens.User.Name != "" {
		name = tokens.User.Name
	}
	fmt.Fprintf(l.deps.Out, "Welcome, %s.\n", name)
	return nil
}

// Signup registers a new account. Accounts wait for admin approval, so the
// user is told to come back rather than logged straight in.
func (l *Login) Signup(ctx context.Context, phone, password, name string) error {
	if _, err := l.deps.API.Register(ctx, utils.FormatPhoneNumber(phone), password, name); err != nil {
		fmt.Fprintf(l.deps.Out, "Registration failed: %v\n", err)
		return err
	}
	fmt.Fprintln(l.deps.Out, "Registration received. An admin must approve the account before you can log in.")
	return nil
}
