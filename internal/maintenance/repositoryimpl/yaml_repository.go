package repositoryimpl

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/techconsole/internal/maintenance"
	"github.com/kazz187/techconsole/pkg/cerr"
	"github.com/kazz187/techconsole/pkg/storage"
)

const (
	activePath   = "maintenance/active.yaml"
	inactivePath = "maintenance/inactive.yaml"
)

var _ maintenance.Repository = (*YAMLRepository)(nil)

// YAMLRepository keeps each schedule set as a single YAML list so the stored
// order is the order the back office delivered.
type YAMLRepository struct {
	storage storage.Storage
}

func NewYAMLRepository(s storage.Storage) *YAMLRepository {
	return &YAMLRepository{storage: s}
}

func (r *YAMLRepository) ListActive(ctx context.Context) ([]maintenance.Schedule, error) {
	return r.read(ctx, activePath)
}

func (r *YAMLRepository) ListInactive(ctx context.Context) ([]maintenance.Schedule, error) {
	schedules, err := r.read(ctx, inactivePath)
	if err != nil {
		return nil, err
	}
	for i := range schedules {
		schedules[i].IsInactive = true
	}
	return schedules, nil
}

func (r *YAMLRepository) SaveActive(ctx context.Context, schedules []maintenance.Schedule) error {
	return r.write(ctx, activePath, schedules)
}

func (r *YAMLRepository) SaveInactive(ctx context.Context, schedules []maintenance.Schedule) error {
	return r.write(ctx, inactivePath, schedules)
}

func (r *YAMLRepository) read(ctx context.Context, p string) ([]maintenance.Schedule, error) {
	data, err := storage.ReadIfExists(ctx, r.storage, p)
	if err != nil {
		return nil, cerr.WrapStorageReadError("maintenance schedules", err)
	}
	if data == nil {
		return nil, nil
	}
	var schedules []maintenance.Schedule
	if err := yaml.Unmarshal(data, &schedules); err != nil {
		return nil, cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to unmarshal %s: %w", p, err))
	}
	return schedules, nil
}

func (r *YAMLRepository) write(ctx context.Context, p string, schedules []maintenance.Schedule) error {
	data, err := yaml.Marshal(schedules)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal schedules: %w", err))
	}
	if err := r.storage.Write(ctx, p, data); err != nil {
		return cerr.WrapStorageWriteError("maintenance schedules", err)
	}
	return nil
}
