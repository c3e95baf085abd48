package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/api"
	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/filex"
	"github.com/dmitrijs2005/credvault/internal/netx"
)

var errPassphraseMismatch = errors.New("passphrases do not match")

// downloadFn is a test seam for fetching presigned export URLs.
var downloadFn = netx.DownloadFromPresignedURL

func (a *App) List(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	secrets, err := a.client.ListSecrets(ctx)
	if err != nil {
		return a.fail(err)
	}

	if len(secrets) == 0 {
		a.printf("No secrets\n")
		return nil
	}
	for _, s := range secrets {
		a.printf("%s  %s  [%s]\n", s.ID, s.Name, strings.Join(s.Tags, ", "))
	}
	return nil
}

func (a *App) Get(ctx context.Context, args []string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	s, err := a.client.GetSecret(ctx, args[0])
	if err != nil {
		return a.fail(err)
	}

	a.printf("ID:          %s\n", s.ID)
	a.printf("Name:        %s\n", s.Name)
	a.printf("Website:     %s\n", deref(s.Website))
	a.printf("Username:    %s\n", deref(s.Username))
	a.printf("Description: %s\n", deref(s.Description))
	a.printf("Tags:        %s\n", strings.Join(s.Tags, ", "))
	a.printf("Created:     %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	a.printf("Updated:     %s\n", s.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) Add(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return a.fail(err)
	}

	req := &api.AddSecretRequest{Name: name}
	if req.Website, err = GetOptionalText(a.reader, "Enter website", a.out); err != nil {
		return a.fail(err)
	}
	if req.Username, err = GetOptionalText(a.reader, "Enter username", a.out); err != nil {
		return a.fail(err)
	}
	if req.Description, err = GetOptionalText(a.reader, "Enter description", a.out); err != nil {
		return a.fail(err)
	}
	if req.Tags, err = GetTags(a.reader, "Enter tags", a.out); err != nil {
		return a.fail(err)
	}

	secret, master, err := a.readSecretAndMaster()
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(secret)
	defer common.WipeByteArray(master)

	req.Secret = string(secret)
	req.MasterPassword = string(master)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	id, err := a.client.AddSecret(ctx, req)
	if err != nil {
		return a.fail(err)
	}

	a.printf("Secret added: %s\n", id)
	return nil
}

func (a *App) Reveal(ctx context.Context, args []string) error {
	master, err := GetPassword("Enter master passphrase", a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(master)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	plain, err := a.client.RevealSecret(ctx, args[0], master)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(plain)

	a.printf("%s\n", plain)
	return nil
}

// Update prompts for every field; blank answers keep the stored value.
func (a *App) Update(ctx context.Context, args []string) error {
	req := &api.UpdateSecretRequest{ID: args[0]}

	var err error
	if req.Name, err = GetOptionalText(a.reader, "Enter new name", a.out); err != nil {
		return a.fail(err)
	}
	if req.Website, err = GetOptionalText(a.reader, "Enter new website", a.out); err != nil {
		return a.fail(err)
	}
	if req.Username, err = GetOptionalText(a.reader, "Enter new username", a.out); err != nil {
		return a.fail(err)
	}
	if req.Description, err = GetOptionalText(a.reader, "Enter new description", a.out); err != nil {
		return a.fail(err)
	}
	tags, err := GetOptionalText(a.reader, "Enter new tags (comma separated)", a.out)
	if err != nil {
		return a.fail(err)
	}
	if tags != nil {
		req.Tags = splitTags(*tags)
	}

	change, err := GetSimpleText(a.reader, "Change the secret value? (y/N)", a.out)
	if err != nil {
		return a.fail(err)
	}
	if strings.EqualFold(change, "y") {
		secret, master, err := a.readSecretAndMaster()
		if err != nil {
			return a.fail(err)
		}
		defer common.WipeByteArray(secret)
		defer common.WipeByteArray(master)

		s, m := string(secret), string(master)
		req.Secret, req.MasterPassword = &s, &m
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.UpdateSecret(ctx, req); err != nil {
		return a.fail(err)
	}

	a.printf("Secret updated\n")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	confirm, err := GetSimpleText(a.reader, "Type 'yes' to delete "+args[0], a.out)
	if err != nil {
		return a.fail(err)
	}
	if confirm != "yes" {
		a.printf("Cancelled\n")
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.DeleteSecret(ctx, args[0]); err != nil {
		return a.fail(err)
	}

	a.printf("Secret deleted\n")
	return nil
}

// Export stores a server-side snapshot and prints its download link. With
// "save" the snapshot is also downloaded into ./exports.
func (a *App) Export(ctx context.Context, args []string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	e, err := a.client.ExportVault(ctx)
	if err != nil {
		return a.fail(err)
	}

	a.printf("Export stored as %s\n", e.ObjectKey)
	a.printf("Download until %s:\n%s\n", e.ExpiresAt.Local().Format("2006-01-02 15:04:05"), e.URL)

	if len(args) == 0 || args[0] != "save" {
		return nil
	}

	data, err := downloadFn(ctx, e.URL)
	if err != nil {
		return a.fail(err)
	}
	dir, err := filex.EnsureSubdDir(a.config.ExportDir)
	if err != nil {
		return a.fail(err)
	}
	path, err := filex.WritePrivateFile(dir, e.ObjectKey, data)
	if err != nil {
		return a.fail(err)
	}

	a.printf("Saved to %s\n", path)
	return nil
}

// readSecretAndMaster reads the secret value and a confirmed master
// passphrase. Both slices must be wiped by the caller.
func (a *App) readSecretAndMaster() (secret, master []byte, err error) {
	secret, err = GetPassword("Enter secret value", a.out)
	if err != nil {
		return nil, nil, err
	}

	master, err = GetPassword("Enter master passphrase", a.out)
	if err != nil {
		common.WipeByteArray(secret)
		return nil, nil, err
	}

	confirm, err := GetPassword("Repeat master passphrase", a.out)
	if err != nil {
		common.WipeByteArray(secret)
		common.WipeByteArray(master)
		return nil, nil, err
	}
	defer common.WipeByteArray(confirm)

	if string(confirm) != string(master) {
		common.WipeByteArray(secret)
		common.WipeByteArray(master)
		return nil, nil, errPassphraseMismatch
	}
	return secret, master, nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
