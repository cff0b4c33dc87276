package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dan9191/matrix-service/internal/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO matrix.users")).
		WithArgs("anna", "anna@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, now))

	u := &models.User{Username: "anna", Email: "anna@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_Duplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO matrix.users")).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	err := repo.CreateUser(context.Background(), &models.User{Email: "anna@example.com"})
	assert.True(t, errors.Is(err, ErrDuplicate))
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM matrix.users")).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

	_, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSaveAndListDates(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO matrix.dates")).
		WithArgs(int64(3), "me", "cipher", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM matrix.dates")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "label", "birth_date_enc", "subscribed", "created_at"}).
			AddRow(11, 3, "me", "cipher", true, now).
			AddRow(10, 3, "mom", "cipher2", false, now))

	rec := &models.DateRecord{UserID: 3, Label: "me", BirthDateEnc: "cipher", Subscribed: true}
	require.NoError(t, repo.SaveDate(context.Background(), rec))
	assert.Equal(t, int64(11), rec.ID)

	list, err := repo.ListDates(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "mom", list[1].Label)
	assert.False(t, list[1].Subscribed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM matrix.dates")).
		WithArgs(int64(11), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM matrix.dates")).
		WithArgs(int64(11), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteDate(context.Background(), 3, 11))
	err := repo.DeleteDate(context.Background(), 4, 11)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListSubscriptions(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE d.subscribed")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label", "birth_date_enc", "username", "email"}).
			AddRow(1, "me", "cipher", "anna", "anna@example.com"))

	subs, err := repo.ListSubscriptions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, models.Subscription{RecordID: 1, Label: "me", BirthDateEnc: "cipher", Username: "anna", Email: "anna@example.com"}, subs[0])
}
