package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/cryptox"
	"github.com/dmitrijs2005/credvault/internal/server/config"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run SecretService against the Postgres repositories and
// check the statements issued inside each transaction.

var secretCols = []string{"id", "owner_id", "ciphertext", "salt", "name", "website", "username", "description", "created_at", "updated_at"}

const secretID = "33333333-3333-3333-3333-333333333333"

func newPostgresSecretService(t *testing.T) (*SecretService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	c, err := cryptox.NewSecretCipher(cryptox.Params{Time: 1, Memory: 8 * 1024, Threads: 1, SaltLen: 16})
	require.NoError(t, err)
	g, err := NewAccessGuard(config.OwnershipHide)
	require.NoError(t, err)

	return NewSecretService(db, repomanager.NewPostgresRepositoryManager(), c, g), mock
}

func TestSecretService_Create_TagInsertFailureLeavesNoSecret(t *testing.T) {
	svc, mock := newPostgresSecretService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT\s+INTO\s+secrets`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(t0, t0))
	mock.ExpectQuery(`INSERT\s+INTO\s+tags`).
		WithArgs(sqlmock.AnyArg(), "finance").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), alice, NewSecret{
		Name: "bank", Secret: []byte("1234"), MasterPassword: []byte("mp"), Tags: []string{"finance", "urgent"},
	})
	assert.ErrorIs(t, err, common.ErrDatabase)
}

func TestSecretService_Create_CommitsSecretAndTags(t *testing.T) {
	svc, mock := newPostgresSecretService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT\s+INTO\s+secrets`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(t0, t0))
	mock.ExpectQuery(`INSERT\s+INTO\s+tags`).WithArgs(sqlmock.AnyArg(), "finance").
		WillReturnRows(sqlmock.NewRows([]string{"content"}).AddRow("finance"))
	mock.ExpectQuery(`INSERT\s+INTO\s+tags`).WithArgs(sqlmock.AnyArg(), "urgent").
		WillReturnRows(sqlmock.NewRows([]string{"content"}).AddRow("urgent"))
	mock.ExpectCommit()

	_, err := svc.Create(context.Background(), alice, NewSecret{
		Name: "bank", Secret: []byte("1234"), MasterPassword: []byte("mp"), Tags: []string{"finance", "urgent"},
	})
	require.NoError(t, err)
}

func expectLockedSecret(mock sqlmock.Sqlmock, owner string) {
	mock.ExpectQuery(`FROM\s+secrets\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+UPDATE`).
		WithArgs(secretID).
		WillReturnRows(sqlmock.NewRows(secretCols).
			AddRow(secretID, owner, []byte("ct"), []byte("salt"), "bank", nil, nil, nil, t0, t0))
}

func TestSecretService_SetTags_DeletesThenInsertsInOneTx(t *testing.T) {
	svc, mock := newPostgresSecretService(t)

	mock.ExpectBegin()
	expectLockedSecret(mock, alice)
	mock.ExpectExec(`DELETE\s+FROM\s+tags\s+WHERE\s+secret_id\s*=\s*\$1$`).
		WithArgs(secretID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT\s+INTO\s+tags`).WithArgs(secretID, "home").
		WillReturnRows(sqlmock.NewRows([]string{"content"}).AddRow("home"))
	mock.ExpectCommit()

	require.NoError(t, svc.SetTags(context.Background(), alice, secretID, []string{"home"}))
}

func TestSecretService_SetTags_InsertFailureRollsBackDelete(t *testing.T) {
	svc, mock := newPostgresSecretService(t)

	mock.ExpectBegin()
	expectLockedSecret(mock, alice)
	mock.ExpectExec(`DELETE\s+FROM\s+tags`).WithArgs(secretID).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT\s+INTO\s+tags`).WithArgs(secretID, "home").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := svc.SetTags(context.Background(), alice, secretID, []string{"home"})
	assert.ErrorIs(t, err, common.ErrDatabase)
}

func TestSecretService_Update_NonOwnerRollsBackBeforeWrite(t *testing.T) {
	svc, mock := newPostgresSecretService(t)

	mock.ExpectBegin()
	expectLockedSecret(mock, bob)
	mock.ExpectRollback()

	err := svc.Update(context.Background(), alice, secretID, SecretUpdate{Name: ptr("mine")})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSecretService_AddTags_ReportsOnlyInserted(t *testing.T) {
	svc, mock := newPostgresSecretService(t)

	mock.ExpectBegin()
	expectLockedSecret(mock, alice)
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+tags.*ON\s+CONFLICT`).WithArgs(secretID, "finance").
		WillReturnRows(sqlmock.NewRows([]string{"content"}))
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+tags.*ON\s+CONFLICT`).WithArgs(secretID, "new").
		WillReturnRows(sqlmock.NewRows([]string{"content"}).AddRow("new"))
	mock.ExpectCommit()

	added, err := svc.AddTags(context.Background(), alice, secretID, []string{"finance", "new"})
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, added)
}

func TestSecretService_BeginFailure(t *testing.T) {
	svc, mock := newPostgresSecretService(t)
	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	err := svc.Delete(context.Background(), alice, secretID)
	assert.ErrorIs(t, err, common.ErrDatabase)
}
