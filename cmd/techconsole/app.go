package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/kazz187/techconsole/internal/config"
	"github.com/kazz187/techconsole/internal/daily"
	"github.com/kazz187/techconsole/internal/eventbus"
	"github.com/kazz187/techconsole/internal/handover"
	handoverrepo "github.com/kazz187/techconsole/internal/handover/repositoryimpl"
	maintenancerepo "github.com/kazz187/techconsole/internal/maintenance/repositoryimpl"
	"github.com/kazz187/techconsole/internal/pushnotification"
	pushsubrepo "github.com/kazz187/techconsole/internal/pushsubscription/repositoryimpl"
	"github.com/kazz187/techconsole/internal/quota"
	"github.com/kazz187/techconsole/internal/render"
	"github.com/kazz187/techconsole/internal/task"
	taskrepo "github.com/kazz187/techconsole/internal/task/repositoryimpl"
	"github.com/kazz187/techconsole/internal/upstream"
	"github.com/kazz187/techconsole/pkg/clog"
	"github.com/kazz187/techconsole/pkg/storage"
)

// app holds everything the commands share.
type app struct {
	env         *config.Env
	store       storage.Storage
	bus         *eventbus.Bus
	tasks       task.Repository
	localTasks  *taskrepo.YAMLRepository
	maintenance *maintenancerepo.YAMLRepository
	rules       *quota.Store
	builder     *daily.Builder
	reports     *handoverrepo.ReportRepository
	orders      *handoverrepo.OrderRepository
	conditions  *handoverrepo.ConditionRepository
	handover    *handover.Service
	pushSubs    *pushsubrepo.YAMLRepository
	pushSender  *pushnotification.Sender
}

func setupLogger(env *config.Env) {
	slog.SetDefault(slog.New(clog.NewHandler(os.Stderr, env.Env, env.SlogLevel())))
}

func newStorage(ctx context.Context, env *config.StorageEnv) (storage.Storage, error) {
	switch env.Type {
	case "s3":
		s, err := storage.NewS3Storage(ctx, env.S3Bucket, env.S3Prefix, env.S3Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 storage: %w", err)
		}
		return s, nil
	case "memory":
		return storage.NewMemoryStorage(), nil
	default:
		s, err := storage.NewLocalStorage(env.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create local storage: %w", err)
		}
		return s, nil
	}
}

func newApp(ctx context.Context, env *config.Env, store storage.Storage) (*app, error) {
	a := &app{
		env:         env,
		store:       store,
		bus:         eventbus.New(),
		localTasks:  taskrepo.NewYAMLRepository(store),
		maintenance: maintenancerepo.NewYAMLRepository(store),
		reports:     handoverrepo.NewReportRepository(store),
		orders:      handoverrepo.NewOrderRepository(store),
		conditions:  handoverrepo.NewConditionRepository(store),
		pushSubs:    pushsubrepo.NewYAMLRepository(store),
	}
	loc := env.Location()

	a.tasks = a.localTasks
	if env.UpstreamEnv.BaseURL != "" {
		a.tasks = upstream.NewClient(env.UpstreamEnv.BaseURL, env.UpstreamEnv.Token, env.UpstreamEnv.Timeout, loc)
		slog.InfoContext(ctx, "serving tasks from upstream", "base_url", env.UpstreamEnv.BaseURL)
	}

	rules, err := quota.NewStore(env.QuotaEnv.RulesFile)
	if err != nil {
		return nil, err
	}
	a.rules = rules
	a.builder = daily.NewBuilder(a.tasks, a.maintenance, rules, loc)

	renderer, err := render.New(render.Options{
		PageWidth:        env.ReportEnv.PageWidthPx,
		FontPath:         env.ReportEnv.FontPath,
		FontSize:         env.ReportEnv.FontSize,
		ImageConcurrency: env.ReportEnv.ImageConcurrency,
		ImageTimeout:     env.ReportEnv.ImageTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare renderer: %w", err)
	}
	var archive handover.ArchiveRepository
	if env.ReportEnv.Archive {
		archive = handoverrepo.NewArchiveRepository(store)
	}
	a.handover = handover.NewService(a.reports, a.orders, a.conditions, archive, renderer, a.bus)

	a.pushSender = pushnotification.NewSender(config.VAPIDEnvFromEnv(env), a.pushSubs)
	return a, nil
}
