package postgres

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantonganh/newsletter"
)

const insertQuery = `INSERT INTO subscriptions (id, email, name, subscribed_at) VALUES ($1, $2, $3, $4)`

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := NewDB("postgres://test")
	db.sqlDB = sqlDB
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, mock
}

func newSubscriber(t *testing.T) *newsletter.NewSubscriber {
	t.Helper()

	s, err := newsletter.ParseNewSubscriber("cristiano romaldetti", "cristianoromaldetti@gmail.com")
	require.NoError(t, err)

	return s
}

func TestSubscriptionService_Insert(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	ss := &subscriptionService{db: db, now: func() time.Time { return now }}

	mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
		WithArgs(sqlmock.AnyArg(), "cristianoromaldetti@gmail.com", "cristiano romaldetti", now.UTC()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := ss.Insert(context.Background(), newSubscriber(t))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionService_InsertGeneratesFreshIDs(t *testing.T) {
	db, mock := newMockDB(t)
	ss := NewSubscriptionService(db)

	var ids []string
	captureID := idRecorder{ids: &ids}
	for i := 0; i < 2; i++ {
		mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
			WithArgs(captureID, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	require.NoError(t, ss.Insert(context.Background(), newSubscriber(t)))
	require.NoError(t, ss.Insert(context.Background(), newSubscriber(t)))
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestSubscriptionService_InsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	ss := NewSubscriptionService(db)

	mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "subscriptions_email_key"`))

	err := ss.Insert(context.Background(), newSubscriber(t))
	require.Error(t, err)
	assert.Equal(t, newsletter.ErrInternal, newsletter.ErrorCode(err))
	assert.Contains(t, err.Error(), "failed to insert")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionService_InsertCanceled(t *testing.T) {
	db, mock := newMockDB(t)
	ss := NewSubscriptionService(db)

	mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
		WillDelayFor(time.Second).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := ss.Insert(ctx, newSubscriber(t))
	assert.Error(t, err)
	assert.Equal(t, newsletter.ErrInternal, newsletter.ErrorCode(err))
}

// idRecorder is a sqlmock.Argument that accepts any UUID string and remembers it.
type idRecorder struct {
	ids *[]string
}

func (r idRecorder) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok || len(s) != 36 {
		return false
	}
	*r.ids = append(*r.ids, s)
	return true
}
