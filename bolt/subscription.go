package bolt

import (
	"context"
	"time"

	"github.com/go-errors/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/quantonganh/newsletter"
)

type subscriptionService struct {
	db  *DB
	now func() time.Time
}

// NewSubscriptionService returns a SubscriptionService backed by a storm bucket.
func NewSubscriptionService(db *DB) newsletter.SubscriptionService {
	return &subscriptionService{
		db:  db,
		now: time.Now,
	}
}

// Insert saves a new subscription in a single bolt transaction
func (ss *subscriptionService) Insert(ctx context.Context, s *newsletter.NewSubscriber) error {
	if err := ctx.Err(); err != nil {
		return &newsletter.Error{Code: newsletter.ErrInternal, Op: "bolt.Insert", Err: err}
	}

	sub := newsletter.NewSubscription(uuid.NewV4().String(), s, ss.now().UTC())
	if err := ss.db.stormDB.Save(sub); err != nil {
		return &newsletter.Error{
			Code: newsletter.ErrInternal,
			Op:   "bolt.Insert",
			Err:  errors.Errorf("failed to save: %v", err),
		}
	}

	return nil
}

// FindByEmail finds a subscription by email
func (ss *subscriptionService) FindByEmail(email string) (*newsletter.Subscription, error) {
	var s newsletter.Subscription
	if err := ss.db.stormDB.One("Email", email, &s); err != nil {
		return nil, err
	}

	return &s, nil
}
