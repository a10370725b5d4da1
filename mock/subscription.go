package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/quantonganh/newsletter"
)

// SubscriptionService is a testify mock of newsletter.SubscriptionService.
type SubscriptionService struct {
	mock.Mock
}

var _ newsletter.SubscriptionService = (*SubscriptionService)(nil)

func (m *SubscriptionService) Insert(ctx context.Context, s *newsletter.NewSubscriber) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
