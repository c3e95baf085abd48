package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/dbx"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/secrets"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/tags"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/users"
)

var t0 = time.Unix(1_700_000_000, 0).UTC()

func ptr(s string) *string { return &s }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// memStore backs the fake repositories. It does not emulate rollback;
// atomicity is covered by the sqlmock tests against the real repositories.
type memStore struct {
	users   map[string]*models.User
	secrets map[string]*models.Secret
	tags    map[string][]string

	addTagErr      error
	failUserDelete error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]*models.User{},
		secrets: map[string]*models.Secret{},
		tags:    map[string][]string{},
	}
}

type fakeRepoManager struct{ st *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return &fakeUsers{m.st} }
func (m *fakeRepoManager) Secrets(dbx.DBTX) secrets.Repository          { return &fakeSecrets{m.st} }
func (m *fakeRepoManager) Tags(dbx.DBTX) tags.Repository                { return &fakeTags{m.st} }

type fakeUsers struct{ st *memStore }

func (r *fakeUsers) emailTaken(email, exceptID string) bool {
	for id, u := range r.st.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (r *fakeUsers) Create(_ context.Context, u *models.User) error {
	if r.emailTaken(u.Email, "") {
		return common.ErrUserAlreadyExists
	}
	u.CreatedAt = t0
	cp := *u
	r.st.users[u.ID] = &cp
	return nil
}

func (r *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.st.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUsers) Update(_ context.Context, u *models.User) error {
	if _, ok := r.st.users[u.ID]; !ok {
		return common.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return common.ErrUserAlreadyExists
	}
	cp := *u
	r.st.users[u.ID] = &cp
	return nil
}

func (r *fakeUsers) Delete(_ context.Context, id string) error {
	if r.st.failUserDelete != nil {
		return r.st.failUserDelete
	}
	if _, ok := r.st.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.st.users, id)
	for sid, s := range r.st.secrets {
		if s.OwnerID == id {
			delete(r.st.secrets, sid)
			delete(r.st.tags, sid)
		}
	}
	return nil
}

type fakeSecrets struct{ st *memStore }

func (r *fakeSecrets) Create(_ context.Context, s *models.Secret) error {
	s.CreatedAt, s.UpdatedAt = t0, t0
	cp := *s
	cp.Tags = nil
	r.st.secrets[s.ID] = &cp
	return nil
}

func (r *fakeSecrets) GetByID(_ context.Context, id string) (*models.Secret, error) {
	s, ok := r.st.secrets[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSecrets) GetByIDForUpdate(ctx context.Context, id string) (*models.Secret, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSecrets) ListByOwner(_ context.Context, ownerID string) ([]*models.Secret, error) {
	out := []*models.Secret{}
	for _, s := range r.st.secrets {
		if s.OwnerID == ownerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeSecrets) Update(_ context.Context, s *models.Secret) error {
	if _, ok := r.st.secrets[s.ID]; !ok {
		return common.ErrNotFound
	}
	s.UpdatedAt = t0.Add(time.Minute)
	cp := *s
	cp.Tags = nil
	r.st.secrets[s.ID] = &cp
	return nil
}

func (r *fakeSecrets) Delete(_ context.Context, id string) error {
	if _, ok := r.st.secrets[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.st.secrets, id)
	delete(r.st.tags, id)
	return nil
}

type fakeTags struct{ st *memStore }

func (r *fakeTags) Add(_ context.Context, secretID, content string) (bool, error) {
	if r.st.addTagErr != nil {
		return false, r.st.addTagErr
	}
	for _, t := range r.st.tags[secretID] {
		if t == content {
			return false, nil
		}
	}
	r.st.tags[secretID] = append(r.st.tags[secretID], content)
	return true, nil
}

func (r *fakeTags) Remove(_ context.Context, secretID, content string) (bool, error) {
	list := r.st.tags[secretID]
	for i, t := range list {
		if t == content {
			r.st.tags[secretID] = append(list[:i:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTags) DeleteAll(_ context.Context, secretID string) error {
	delete(r.st.tags, secretID)
	return nil
}

func (r *fakeTags) ListBySecret(_ context.Context, secretID string) ([]string, error) {
	out := append([]string{}, r.st.tags[secretID]...)
	sort.Strings(out)
	return out, nil
}

func (r *fakeTags) ListByOwner(ctx context.Context, ownerID string) (map[string][]string, error) {
	out := map[string][]string{}
	for sid, s := range r.st.secrets {
		if s.OwnerID != ownerID || len(r.st.tags[sid]) == 0 {
			continue
		}
		out[sid], _ = r.ListBySecret(ctx, sid)
	}
	return out, nil
}

// fakeHasher stores "hash:<password>" and counts verifications.
type fakeHasher struct {
	hashErr  error
	verifies int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hash:" + password, nil
}

func (h *fakeHasher) Verify(password, encoded string) (bool, error) {
	h.verifies++
	if !strings.HasPrefix(encoded, "hash:") {
		return false, errors.New("malformed hash")
	}
	return encoded == "hash:"+password, nil
}

type fakeRevoker struct {
	revoked []string
	err     error
}

func (r *fakeRevoker) Revoke(_ context.Context, userID string) error {
	if r.err != nil {
		return r.err
	}
	r.revoked = append(r.revoked, userID)
	return nil
}

type staticKey []byte

func (k staticKey) Use(fn func([]byte) error) error { return fn(k) }
