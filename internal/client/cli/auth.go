package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/credvault/internal/client/client"
	"github.com/dmitrijs2005/credvault/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.fail(err)
	}
	username, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return a.fail(err)
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password)

	hint, err := GetOptionalText(a.reader, "Enter password hint", a.out)
	if err != nil {
		return a.fail(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	resp, err := a.client.Register(ctx, email, username, password, hint)
	if err != nil {
		return a.fail(err)
	}

	a.email = resp.Email
	a.printf("Registered and logged in as %s\n", resp.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.fail(err)
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		var lerr *client.LoginFailedError
		if errors.As(err, &lerr) && lerr.Hint != nil {
			a.printf("Password hint: %s\n", *lerr.Hint)
		}
		return a.fail(err)
	}

	a.email = resp.Email
	a.printf("Login successful\n")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.email = ""
	a.printf("Logged out\n")
	return nil
}
