package repositoryimpl

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/techconsole/internal/handover"
	"github.com/kazz187/techconsole/pkg/cerr"
	"github.com/kazz187/techconsole/pkg/storage"
)

const (
	reportsPrefix  = "handover_reports"
	ordersPrefix   = "orders"
	conditionsPath = "condition_definitions.yaml"
)

var (
	_ handover.ReportRepository    = (*ReportRepository)(nil)
	_ handover.OrderRepository     = (*OrderRepository)(nil)
	_ handover.ConditionRepository = (*ConditionRepository)(nil)
)

func readYAML(ctx context.Context, s storage.Storage, path, target string, v any) error {
	data, err := s.Read(ctx, path)
	if err != nil {
		return cerr.WrapStorageReadError(target, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to unmarshal %s: %w", path, err))
	}
	return nil
}

func writeYAML(ctx context.Context, s storage.Storage, path, target string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal %s: %w", target, err))
	}
	if err := s.Write(ctx, path, data); err != nil {
		return cerr.WrapStorageWriteError(target, err)
	}
	return nil
}

type ReportRepository struct {
	storage storage.Storage
}

func NewReportRepository(s storage.Storage) *ReportRepository {
	return &ReportRepository{storage: s}
}

func (r *ReportRepository) Get(ctx context.Context, id int64) (*handover.Report, error) {
	var report handover.Report
	if err := readYAML(ctx, r.storage, fmt.Sprintf("%s/%d.yaml", reportsPrefix, id), "handover report", &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) Save(ctx context.Context, report *handover.Report) error {
	return writeYAML(ctx, r.storage, fmt.Sprintf("%s/%d.yaml", reportsPrefix, report.HandoverReportID), "handover report", report)
}

type OrderRepository struct {
	storage storage.Storage
}

func NewOrderRepository(s storage.Storage) *OrderRepository {
	return &OrderRepository{storage: s}
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*handover.Order, error) {
	var order handover.Order
	if err := readYAML(ctx, r.storage, fmt.Sprintf("%s/%d.yaml", ordersPrefix, id), "order", &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Save(ctx context.Context, order *handover.Order) error {
	return writeYAML(ctx, r.storage, fmt.Sprintf("%s/%d.yaml", ordersPrefix, order.OrderID), "order", order)
}

// ConditionRepository keeps the whole condition catalogue in one file.
type ConditionRepository struct {
	storage storage.Storage
}

func NewConditionRepository(s storage.Storage) *ConditionRepository {
	return &ConditionRepository{storage: s}
}

func (r *ConditionRepository) List(ctx context.Context) ([]handover.ConditionDefinition, error) {
	exists, err := r.storage.Exists(ctx, conditionsPath)
	if err != nil {
		return nil, cerr.WrapStorageReadError("condition definitions", err)
	}
	if !exists {
		return nil, nil
	}
	var defs []handover.ConditionDefinition
	if err := readYAML(ctx, r.storage, conditionsPath, "condition definitions", &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func (r *ConditionRepository) SaveAll(ctx context.Context, defs []handover.ConditionDefinition) error {
	return writeYAML(ctx, r.storage, conditionsPath, "condition definitions", defs)
}
