package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/dbx"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService handles registration, login and profile changes.
type UserService struct {
	db         *sql.DB
	rm         repomanager.RepositoryManager
	hasher     PasswordHasher
	tokens     TokenIssuer
	revoker    Revoker
	exposeHint bool
	dummyHash  string
}

// NewUserService precomputes a dummy hash that Login verifies against when
// the email is unknown, so both failure paths cost one Argon2 run.
func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, hasher PasswordHasher,
	tokens TokenIssuer, revoker Revoker, exposeHint bool) (*UserService, error) {

	pw, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("dummy password: %w", err)
	}
	dummy, err := hasher.Hash(pw)
	if err != nil {
		return nil, fmt.Errorf("%w: dummy hash: %w", common.ErrHashing, err)
	}

	return &UserService{
		db:         db,
		rm:         rm,
		hasher:     hasher,
		tokens:     tokens,
		revoker:    revoker,
		exposeHint: exposeHint,
		dummyHash:  dummy,
	}, nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil || strings.ContainsAny(email, " <>") {
		return fmt.Errorf("%w: invalid email", common.ErrInvalidRequest)
	}
	return nil
}

// Register creates the account and returns it together with a token.
func (s *UserService) Register(ctx context.Context, email, username, password string, hint *string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if username == "" {
		return nil, "", fmt.Errorf("%w: username is required", common.ErrInvalidRequest)
	}
	if password == "" {
		return nil, "", fmt.Errorf("%w: password is required", common.ErrInvalidRequest)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", common.ErrHashing, err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		PasswordHint: hint,
	}
	if err := s.rm.Users(s.db).Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login checks the credentials and issues a token. Every mismatch is a
// *LoginError; its Hint is set only when hints are exposed and the
// account exists.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", common.ErrInvalidRequest)
	}

	u, err := s.rm.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, "", err
		}
		if _, err := s.hasher.Verify(password, s.dummyHash); err != nil {
			return nil, "", fmt.Errorf("%w: %w", common.ErrHashing, err)
		}
		return nil, "", &LoginError{}
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", common.ErrHashing, err)
	}
	if !ok {
		le := &LoginError{}
		if s.exposeHint {
			le.Hint = u.PasswordHint
		}
		return nil, "", le
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// UserUpdate is a profile change. Password, when set, is re-hashed.
type UserUpdate struct {
	Email        *string
	Username     *string
	Password     *string
	PasswordHint *string
}

// UpdateUser merges upd into the caller's account.
func (s *UserService) UpdateUser(ctx context.Context, userID string, upd UserUpdate) (*models.User, error) {
	patch := models.UserPatch{PasswordHint: upd.PasswordHint}

	if upd.Email != nil {
		e := strings.TrimSpace(*upd.Email)
		if err := validateEmail(e); err != nil {
			return nil, err
		}
		patch.Email = &e
	}
	if upd.Username != nil {
		n := strings.TrimSpace(*upd.Username)
		if n == "" {
			return nil, fmt.Errorf("%w: username must not be empty", common.ErrInvalidRequest)
		}
		patch.Username = &n
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", common.ErrInvalidRequest)
		}
		hash, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrHashing, err)
		}
		patch.PasswordHash = &hash
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrInvalidRequest)
	}

	var updated *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Users(tx)
		u, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		patch.ApplyTo(u)
		if err := repo.Update(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUser revokes the caller's outstanding tokens and then removes the
// account; secrets and tags go with it through the foreign keys. When the
// revocation fails nothing is deleted. A revocation left behind by a failed
// delete only logs the caller out.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.revoker.Revoke(ctx, userID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return s.rm.Users(s.db).Delete(ctx, userID)
}
