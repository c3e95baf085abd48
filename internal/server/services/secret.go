package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/dbx"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SecretService owns the vault records. Every write that touches more than
// one row runs in a single transaction, and every access to an existing
// record passes the AccessGuard first.
type SecretService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	cipher SecretCipher
	guard  *AccessGuard
}

func NewSecretService(db *sql.DB, rm repomanager.RepositoryManager, cipher SecretCipher, guard *AccessGuard) *SecretService {
	return &SecretService{db: db, rm: rm, cipher: cipher, guard: guard}
}

// NewSecret is the input of Create.
type NewSecret struct {
	Name           string
	Secret         []byte
	MasterPassword []byte
	Website        *string
	Username       *string
	Description    *string
	Tags           []string
}

// SecretUpdate is the input of Update. Secret requires MasterPassword.
// A non-nil Tags replaces the tag set.
type SecretUpdate struct {
	Name           *string
	Secret         []byte
	MasterPassword []byte
	Website        *string
	Username       *string
	Description    *string
	Tags           []string
}

// List returns the caller's records with their tags.
func (s *SecretService) List(ctx context.Context, ownerID string) ([]*models.Secret, error) {
	list, err := s.rm.Secrets(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	tagsByID, err := s.rm.Tags(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, sec := range list {
		sec.Tags = tagsByID[sec.ID]
		if sec.Tags == nil {
			sec.Tags = []string{}
		}
	}
	return list, nil
}

// Get loads one record owned by the caller, tags included.
func (s *SecretService) Get(ctx context.Context, ownerID, id string) (*models.Secret, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	sec, err := s.rm.Secrets(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Check(ownerID, sec); err != nil {
		return nil, err
	}
	if sec.Tags, err = s.rm.Tags(s.db).ListBySecret(ctx, id); err != nil {
		return nil, err
	}
	return sec, nil
}

// Create encrypts the secret value and stores the record with its tags.
// The caller's plaintext and passphrase buffers are left untouched.
func (s *SecretService) Create(ctx context.Context, ownerID string, in NewSecret) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", common.ErrInvalidRequest)
	}
	if len(in.Secret) == 0 {
		return "", fmt.Errorf("%w: secret is required", common.ErrInvalidRequest)
	}
	if len(in.MasterPassword) == 0 {
		return "", fmt.Errorf("%w: master password is required", common.ErrInvalidRequest)
	}

	blob, salt, err := s.cipher.Encrypt(in.Secret, in.MasterPassword)
	if err != nil {
		return "", err
	}

	sec := &models.Secret{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Ciphertext:  blob,
		Salt:        salt,
		Name:        name,
		Website:     in.Website,
		Username:    in.Username,
		Description: in.Description,
	}
	tags := normalizeTags(in.Tags)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Secrets(tx).Create(ctx, sec); err != nil {
			return err
		}
		tr := s.rm.Tags(tx)
		for _, t := range tags {
			if _, err := tr.Add(ctx, sec.ID, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return sec.ID, nil
}

// Update merges upd into the record. A new secret value is encrypted
// with a fresh salt and nonce before the transaction starts.
func (s *SecretService) Update(ctx context.Context, ownerID, id string, upd SecretUpdate) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}

	patch := models.SecretPatch{
		Website:     upd.Website,
		Username:    upd.Username,
		Description: upd.Description,
	}
	if upd.Name != nil {
		n := strings.TrimSpace(*upd.Name)
		if n == "" {
			return fmt.Errorf("%w: name must not be empty", common.ErrInvalidRequest)
		}
		patch.Name = &n
	}
	if upd.Secret != nil {
		if len(upd.Secret) == 0 {
			return fmt.Errorf("%w: secret must not be empty", common.ErrInvalidRequest)
		}
		if len(upd.MasterPassword) == 0 {
			return fmt.Errorf("%w: master password is required to change the secret", common.ErrInvalidRequest)
		}
		if patch.Ciphertext, patch.Salt, err = s.cipher.Encrypt(upd.Secret, upd.MasterPassword); err != nil {
			return err
		}
	}
	if upd.Tags != nil {
		patch.Tags = normalizeTags(upd.Tags)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Secrets(tx)
		sec, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.guard.Check(ownerID, sec); err != nil {
			return err
		}
		patch.ApplyTo(sec)
		if err := repo.Update(ctx, sec); err != nil {
			return err
		}
		if patch.Tags == nil {
			return nil
		}
		return replaceTags(ctx, s.rm.Tags(tx), id, patch.Tags)
	})
}

// Delete removes the record; its tags cascade.
func (s *SecretService) Delete(ctx context.Context, ownerID, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Secrets(tx)
		sec, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.guard.Check(ownerID, sec); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

// Reveal decrypts the secret value. A wrong passphrase and a tampered
// record both yield common.ErrAuthenticationFailed.
func (s *SecretService) Reveal(ctx context.Context, ownerID, id string, masterPassword []byte) ([]byte, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if len(masterPassword) == 0 {
		return nil, fmt.Errorf("%w: master password is required", common.ErrInvalidRequest)
	}
	sec, err := s.rm.Secrets(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Check(ownerID, sec); err != nil {
		return nil, err
	}
	return s.cipher.Decrypt(sec.Ciphertext, sec.Salt, masterPassword)
}

// AddTags inserts the given tags and returns only those that were not
// already present.
func (s *SecretService) AddTags(ctx context.Context, ownerID, id string, tags []string) ([]string, error) {
	return s.changeTags(ctx, ownerID, id, tags, func(ctx context.Context, tx dbx.DBTX, secretID, tag string) (bool, error) {
		return s.rm.Tags(tx).Add(ctx, secretID, tag)
	})
}

// RemoveTags deletes the given tags and returns those that existed.
func (s *SecretService) RemoveTags(ctx context.Context, ownerID, id string, tags []string) ([]string, error) {
	return s.changeTags(ctx, ownerID, id, tags, func(ctx context.Context, tx dbx.DBTX, secretID, tag string) (bool, error) {
		return s.rm.Tags(tx).Remove(ctx, secretID, tag)
	})
}

type tagOp func(ctx context.Context, tx dbx.DBTX, secretID, tag string) (bool, error)

func (s *SecretService) changeTags(ctx context.Context, ownerID, id string, tags []string, op tagOp) ([]string, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	tags = normalizeTags(tags)
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: no tags given", common.ErrInvalidRequest)
	}

	changed := make([]string, 0, len(tags))
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sec, err := s.rm.Secrets(tx).GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.guard.Check(ownerID, sec); err != nil {
			return err
		}
		for _, t := range tags {
			ok, err := op(ctx, tx, id, t)
			if err != nil {
				return err
			}
			if ok {
				changed = append(changed, t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}

// SetTags replaces the whole tag set. An empty list clears it.
func (s *SecretService) SetTags(ctx context.Context, ownerID, id string, tags []string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	tags = normalizeTags(tags)
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sec, err := s.rm.Secrets(tx).GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.guard.Check(ownerID, sec); err != nil {
			return err
		}
		return replaceTags(ctx, s.rm.Tags(tx), id, tags)
	})
}

type tagWriter interface {
	Add(ctx context.Context, secretID, content string) (bool, error)
	DeleteAll(ctx context.Context, secretID string) error
}

func replaceTags(ctx context.Context, tr tagWriter, secretID string, tags []string) error {
	if err := tr.DeleteAll(ctx, secretID); err != nil {
		return err
	}
	for _, t := range tags {
		if _, err := tr.Add(ctx, secretID, t); err != nil {
			return err
		}
	}
	return nil
}
