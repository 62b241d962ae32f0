package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/techconsole/internal/handover"
	"github.com/kazz187/techconsole/internal/maintenance"
	"github.com/kazz187/techconsole/internal/task"
)

// seedFixture is the fixture format accepted by "techconsole seed". Every
// section is optional.
type seedFixture struct {
	Tasks               []*task.Task                   `yaml:"tasks"`
	Maintenance         []maintenance.Schedule         `yaml:"maintenance"`
	InactiveMaintenance []maintenance.Schedule         `yaml:"inactive_maintenance"`
	HandoverReports     []*handover.Report             `yaml:"handover_reports"`
	Orders              []*handover.Order              `yaml:"orders"`
	ConditionDefs       []handover.ConditionDefinition `yaml:"condition_definitions"`
}

type seedResult struct {
	Tasks, Maintenance, Inactive, Reports, Orders, Conditions int
}

func (a *app) seed(ctx context.Context, path string) (seedResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return seedResult{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f seedFixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return seedResult{}, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	var res seedResult
	for _, t := range f.Tasks {
		if err := a.localTasks.Save(ctx, t); err != nil {
			return res, err
		}
		res.Tasks++
	}
	if len(f.Maintenance) > 0 {
		if err := a.maintenance.SaveActive(ctx, f.Maintenance); err != nil {
			return res, err
		}
		res.Maintenance = len(f.Maintenance)
	}
	if len(f.InactiveMaintenance) > 0 {
		if err := a.maintenance.SaveInactive(ctx, f.InactiveMaintenance); err != nil {
			return res, err
		}
		res.Inactive = len(f.InactiveMaintenance)
	}
	for _, r := range f.HandoverReports {
		if err := a.reports.Save(ctx, r); err != nil {
			return res, err
		}
		res.Reports++
	}
	for _, o := range f.Orders {
		if err := a.orders.Save(ctx, o); err != nil {
			return res, err
		}
		res.Orders++
	}
	if len(f.ConditionDefs) > 0 {
		if err := a.conditions.SaveAll(ctx, f.ConditionDefs); err != nil {
			return res, err
		}
		res.Conditions = len(f.ConditionDefs)
	}
	return res, nil
}
