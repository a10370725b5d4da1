package postgres

import (
	"context"
	"time"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/quantonganh/newsletter"
)

type subscriptionService struct {
	db  *DB
	now func() time.Time
}

// NewSubscriptionService returns a SubscriptionService backed by the subscriptions table.
func NewSubscriptionService(db *DB) newsletter.SubscriptionService {
	return &subscriptionService{
		db:  db,
		now: time.Now,
	}
}

// Insert inserts new subscription into the subscriptions table
func (ss *subscriptionService) Insert(ctx context.Context, s *newsletter.NewSubscriber) error {
	sub := newsletter.NewSubscription(uuid.NewV4().String(), s, ss.now().UTC())

	_, err := ss.db.sqlDB.ExecContext(ctx,
		`INSERT INTO subscriptions (id, email, name, subscribed_at) VALUES ($1, $2, $3, $4)`,
		sub.ID, sub.Email, sub.Name, sub.SubscribedAt)
	if err != nil {
		return &newsletter.Error{
			Code: newsletter.ErrInternal,
			Op:   "postgres.Insert",
			Err:  errors.Wrap(err, "failed to insert"),
		}
	}

	return nil
}
