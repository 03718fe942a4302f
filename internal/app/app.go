// Package app wires the sync engine together: config, local store, remote
// client, connectivity probe, and the periodic sync loop run by the
// parishsync command.
package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/parishkeep/parishsync/internal/config"
	"github.com/parishkeep/parishsync/internal/logging"
	"github.com/parishkeep/parishsync/internal/models"
	"github.com/parishkeep/parishsync/internal/netx"
	"github.com/parishkeep/parishsync/internal/remote"
	"github.com/parishkeep/parishsync/internal/store"
	"github.com/parishkeep/parishsync/internal/sync"
)

type App struct {
	config *config.Config
	repos  *store.Repositories
	engine *sync.Engine
	probe  *netx.HTTPProbe
	log    logging.Logger
	online bool
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repos, err := store.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	probe, err := netx.NewHTTPProbe(cfg.RemoteBaseURL, cfg.OnlineCheckTimeout)
	if err != nil {
		return nil, err
	}

	tokens := remote.NewTokenSource(cfg.AuthRefreshURL, cfg.AccessToken, cfg.RefreshToken)
	client := remote.NewClient(cfg.RemoteBaseURL, tokens, cfg.RemoteCallTimeout, log)

	routines := []sync.Routine{
		sync.NewPendingSyncer[models.SermonNote]("sermon_notes",
			repos.Notes, remote.NewNoteStore(client), sync.NotePolicy{}, probe, log),
		sync.NewPendingSyncer[models.AttendanceMark]("attendance",
			repos.Attendance, remote.NewAttendanceStore(client), sync.AttendancePolicy{}, probe, log),
	}
	puller := sync.NewPuller(
		remote.NewMemberStore(client), remote.NewAnnouncementStore(client), remote.NewSermonStore(client),
		repos.Members, repos.Announcements, repos.Sermons,
		cfg.AnnouncementWindowDays, cfg.SermonWindowDays, log)

	engine := sync.NewEngine(probe, routines, puller, repos.Meta, log)
	if err := engine.RestoreLastSync(ctx); err != nil {
		log.Warn(ctx, "could not restore last-sync time", "error", err)
	}

	return &App{config: cfg, repos: repos, engine: engine, probe: probe, log: log}, nil
}

// Engine exposes the sync engine so a host UI can trigger runs and
// subscribe to state.
func (a *App) Engine() *sync.Engine { return a.engine }

// Run drives the periodic sync loop until ctx is cancelled, then closes the
// local store.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.repos.DB.Close(); err != nil {
			a.log.Error(ctx, "failed to close local store", "error", err)
		}
	}()

	cancel := a.engine.Subscribe(func(s sync.SyncState) {
		a.log.Debug(ctx, "sync state changed", "status", string(s.Status), "error", s.Err)
	})
	defer cancel()

	a.syncOnce(ctx)

	ticker := time.NewTicker(a.config.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.syncOnce(ctx)
		case <-ctx.Done():
			a.log.Info(ctx, "shutting down")
			return
		}
	}
}

// syncOnce logs online/offline transitions and runs one sync pass.
func (a *App) syncOnce(ctx context.Context) {
	reachable := a.probe.Reachable(ctx)
	if reachable != a.online {
		a.online = reachable
		if reachable {
			a.log.Info(ctx, "remote store reachable, switching to online mode")
		} else {
			a.log.Info(ctx, "remote store unreachable, switching to offline mode")
		}
	}
	a.engine.SyncAll(ctx, a.config.TenantID)
}
