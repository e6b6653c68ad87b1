package testsupport

import (
	"testing"

	"gedcompare/internal/config"
	"gedcompare/internal/logging"
	"gedcompare/internal/session"
	"gedcompare/internal/sessiondb"
	"gedcompare/internal/sessionfile"
)

// MustOpenStore opens the session store selected by cfg and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) session.Store {
	t.Helper()

	var (
		store session.Store
		err   error
	)
	switch cfg.Storage.Backend {
	case config.BackendJSON:
		store, err = sessionfile.Open(cfg, logging.NewNop())
	default:
		store, err = sessiondb.Open(cfg, logging.NewNop())
	}
	if err != nil {
		t.Fatalf("open %s store: %v", cfg.Storage.Backend, err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
