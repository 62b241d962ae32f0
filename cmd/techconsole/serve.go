package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourcegraph/conc/pool"

	server "github.com/kazz187/techconsole/internal"
	"github.com/kazz187/techconsole/internal/config"
	"github.com/kazz187/techconsole/internal/daily"
	"github.com/kazz187/techconsole/internal/digest"
	"github.com/kazz187/techconsole/internal/eventbus"
	"github.com/kazz187/techconsole/internal/handover"
	"github.com/kazz187/techconsole/internal/maintenance"
	"github.com/kazz187/techconsole/internal/pushnotification"
	"github.com/kazz187/techconsole/internal/task"
)

const shutdownTimeout = 10 * time.Second

func (a *app) httpServer(journal *eventbus.Journal) *server.Server {
	return server.NewServer(
		config.BaseEnvFromEnv(a.env),
		journal,
		task.NewServer(a.tasks, a.bus),
		maintenance.NewServer(a.maintenance, time.Now),
		daily.NewServer(a.builder),
		handover.NewServer(a.handover),
		pushnotification.NewServer(config.VAPIDEnvFromEnv(a.env), a.pushSubs, a.pushSender),
	)
}

// serve runs the HTTP server and the background workers until a signal
// arrives or one of them fails.
func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	journal := eventbus.NewJournal(a.bus, a.store, a.env.Location())
	srv := a.httpServer(journal)
	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		journal.Start(ctx)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		pushnotification.NewDispatcher(a.bus, a.pushSender).Start(ctx)
		return nil
	})
	if a.env.QuotaEnv.Watch {
		p.Go(a.rules.Watch)
	}
	if a.env.DigestEnv.Enabled {
		job := digest.NewJob(a.builder, a.store, a.bus, a.env.DigestEnv.Schedule)
		p.Go(job.Start)
	}
	p.Go(func(ctx context.Context) error {
		err := srv.ListenAndServe(ctx)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return p.Wait()
}
