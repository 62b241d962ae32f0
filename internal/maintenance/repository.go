package maintenance

import "context"

type Repository interface {
	// ListActive returns the active and priority schedules in stored order.
	ListActive(ctx context.Context) ([]Schedule, error)
	// ListInactive returns the schedules of devices taken out of service.
	ListInactive(ctx context.Context) ([]Schedule, error)
}
