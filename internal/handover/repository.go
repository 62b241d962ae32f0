package handover

import "context"

type ReportRepository interface {
	Get(ctx context.Context, id int64) (*Report, error)
	Save(ctx context.Context, r *Report) error
}

type OrderRepository interface {
	Get(ctx context.Context, id int64) (*Order, error)
	Save(ctx context.Context, o *Order) error
}

type ConditionRepository interface {
	List(ctx context.Context) ([]ConditionDefinition, error)
	SaveAll(ctx context.Context, defs []ConditionDefinition) error
}

// ArchiveRepository keeps every rendered PDF.
type ArchiveRepository interface {
	Put(ctx context.Context, reportID int64, pdf []byte) (string, error)
	List(ctx context.Context, reportID int64) ([]string, error)
}
