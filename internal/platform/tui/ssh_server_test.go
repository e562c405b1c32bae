package tui

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// drainingListener runs drain while shutting down, standing in for
// sessions that finish during the grace period.
type drainingListener struct {
	drain func()
}

func (d drainingListener) ListenAndServe() error { return ssh.ErrServerClosed }

func (d drainingListener) Shutdown(context.Context) error {
	d.drain()
	return nil
}

func TestShutdownSavesRunsFinishedWhileDraining(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}

	cfg := config.DefaultBreakoutConfig()
	cfg.Gameplay.Lives = 1
	game, err := breakout.New(cfg, SaveRuns(store, "bob", nil))
	if err != nil {
		t.Fatal(err)
	}
	game.Keys().Press(core.KeyEnter)
	game.ProcessInput(0)

	srv := &SSHServer{
		config: DefaultSSHServerConfig(),
		store:  store,
		logger: log.New(io.Discard),
		server: drainingListener{drain: func() {
			game.Ball().Collider.Stuck = false
			game.Ball().Position[1] = 1300
			game.Update(0.001)
		}},
	}

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if srv.store != nil {
		t.Error("store should be closed after shutdown")
	}

	reopened, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	runs, err := reopened.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Player != "bob" {
		t.Errorf("runs = %+v, want the run finished during shutdown", runs)
	}
}
