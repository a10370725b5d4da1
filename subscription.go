package newsletter

import (
	"context"
	"time"
)

// SubscriptionService is the interface that wraps methods related to storing subscribers
type SubscriptionService interface {
	// Insert stores s as a new subscription row. It either writes exactly one
	// row or none.
	Insert(ctx context.Context, s *NewSubscriber) error
}

// NewSubscriber is a subscriber whose name and email have both been validated.
type NewSubscriber struct {
	name  SubscriberName
	email SubscriberEmail
}

// ParseNewSubscriber validates the raw form fields and builds a NewSubscriber.
// It stops at the first invalid field.
func ParseNewSubscriber(name, email string) (*NewSubscriber, error) {
	n, err := ParseSubscriberName(name)
	if err != nil {
		return nil, &Error{Code: ErrInvalid, Op: "ParseNewSubscriber", Err: err}
	}

	e, err := ParseSubscriberEmail(email)
	if err != nil {
		return nil, &Error{Code: ErrInvalid, Op: "ParseNewSubscriber", Err: err}
	}

	return &NewSubscriber{name: n, email: e}, nil
}

// Name returns the validated display name.
func (s *NewSubscriber) Name() SubscriberName {
	return s.name
}

// Email returns the validated email address.
func (s *NewSubscriber) Email() SubscriberEmail {
	return s.email
}

// Subscription represents a stored subscriber
type Subscription struct {
	ID           string    `storm:"id"`
	Email        string    `storm:"unique"`
	Name         string
	SubscribedAt time.Time `storm:"index"`
}

// NewSubscription returns the row to store for s, stamped with id and now.
func NewSubscription(id string, s *NewSubscriber, now time.Time) *Subscription {
	return &Subscription{
		ID:           id,
		Email:        s.email.String(),
		Name:         s.name.String(),
		SubscribedAt: now,
	}
}

