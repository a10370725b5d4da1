package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantonganh/newsletter"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db := NewDB(filepath.Join(t.TempDir(), "newsletter.db"))
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestDB_OpenRequiresPath(t *testing.T) {
	assert.Error(t, NewDB("").Open())
}

func TestSubscriptionService_Insert(t *testing.T) {
	db := openTestDB(t)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ss := &subscriptionService{db: db, now: func() time.Time { return now }}

	s, err := newsletter.ParseNewSubscriber("cristiano romaldetti", "cristianoromaldetti@gmail.com")
	require.NoError(t, err)
	require.NoError(t, ss.Insert(context.Background(), s))

	saved, err := ss.FindByEmail("cristianoromaldetti@gmail.com")
	require.NoError(t, err)
	assert.Len(t, saved.ID, 36)
	assert.Equal(t, "cristiano romaldetti", saved.Name)
	assert.True(t, now.Equal(saved.SubscribedAt))

	count, err := db.stormDB.Count(&newsletter.Subscription{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSubscriptionService_InsertDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	ss := NewSubscriptionService(db)

	s, err := newsletter.ParseNewSubscriber("cristiano romaldetti", "cristianoromaldetti@gmail.com")
	require.NoError(t, err)
	require.NoError(t, ss.Insert(context.Background(), s))

	err = ss.Insert(context.Background(), s)
	require.Error(t, err)
	assert.Equal(t, newsletter.ErrInternal, newsletter.ErrorCode(err))

	count, err := db.stormDB.Count(&newsletter.Subscription{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSubscriptionService_InsertCanceled(t *testing.T) {
	db := openTestDB(t)
	ss := NewSubscriptionService(db)

	s, err := newsletter.ParseNewSubscriber("cristiano romaldetti", "cristianoromaldetti@gmail.com")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = ss.Insert(ctx, s)
	assert.Equal(t, newsletter.ErrInternal, newsletter.ErrorCode(err))

	var all []newsletter.Subscription
	err = db.stormDB.All(&all)
	require.True(t, err == nil || err == storm.ErrNotFound)
	assert.Empty(t, all)
}
