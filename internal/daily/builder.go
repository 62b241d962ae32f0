package daily

import (
	"context"
	"time"

	"github.com/kazz187/techconsole/internal/maintenance"
	"github.com/kazz187/techconsole/internal/quota"
	"github.com/kazz187/techconsole/internal/task"
)

// RuleSource hands out the current quota rules. *quota.Store satisfies it.
type RuleSource interface {
	Rules() *quota.RuleSet
}

// Builder loads everything a daily view needs from the repositories.
type Builder struct {
	tasks       task.Repository
	maintenance maintenance.Repository
	rules       RuleSource
	loc         *time.Location
	now         func() time.Time
}

func NewBuilder(tasks task.Repository, schedules maintenance.Repository, rules RuleSource, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.Local
	}
	return &Builder{
		tasks:       tasks,
		maintenance: schedules,
		rules:       rules,
		loc:         loc,
		now:         time.Now,
	}
}

func (b *Builder) Location() *time.Location {
	return b.loc
}

// Today returns midnight of the current day in the builder's location.
func (b *Builder) Today() time.Time {
	return maintenance.StartOfDay(b.now().In(b.loc))
}

func (b *Builder) Build(ctx context.Context, date time.Time) (*View, error) {
	tasks, err := b.tasks.List(ctx, "")
	if err != nil {
		return nil, err
	}
	active, err := b.maintenance.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	inactive, err := b.maintenance.ListInactive(ctx)
	if err != nil {
		return nil, err
	}
	var rules *quota.RuleSet
	if b.rules != nil {
		rules = b.rules.Rules()
	}
	return BuildView(date, b.now().In(b.loc), tasks, active, inactive, rules), nil
}
