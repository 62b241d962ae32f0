package task

import "context"

// Repository is the task source the console reads from and writes status
// changes to. Get and UpdateStatus return a cerr NotFound error for unknown
// ids.
type Repository interface {
	List(ctx context.Context, status Status) ([]*Task, error)
	Get(ctx context.Context, id int64) (*Task, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Task, error)
}
