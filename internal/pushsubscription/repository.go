package pushsubscription

import "context"

type Repository interface {
	// Upsert stores s, replacing the subscription registered for the same
	// endpoint. It reports whether a new subscription was created.
	Upsert(ctx context.Context, s *Subscription) (bool, error)
	List(ctx context.Context) ([]*Subscription, error)
	Delete(ctx context.Context, id string) error
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}
