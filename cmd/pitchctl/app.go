package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/soaringjerry/evoa/internal/client"
	"github.com/soaringjerry/evoa/internal/db"
	"github.com/soaringjerry/evoa/internal/logging"
	"github.com/soaringjerry/evoa/internal/models"
	"github.com/soaringjerry/evoa/internal/store"
	"github.com/soaringjerry/evoa/internal/utils"
)

const dbFile = "evoa.db"

var (
	errNoProfile   = errors.New("no profile yet, run: pitchctl profile set")
	errNotReviewer = errors.New("role not allowed")
)

type app struct {
	dataDir   string
	server    string
	token     string
	timeout   time.Duration
	noStorage bool
	logLevel  string

	kv    *db.SQLiteKV
	store *store.LocalStore
	now   func() time.Time
}

func defaultDataDir() string {
	if d := utils.SafeEnv("EVOA_DATA_DIR", ""); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".evoa"
	}
	return filepath.Join(home, ".evoa")
}

func newApp() *app { return &app{now: time.Now} }

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "pitchctl",
		Short:         "Local evoa client: profile, catalog, likes, comments and AI analyses",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Init(cmd.ErrOrStderr(), a.logLevel, "text")
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.dataDir, "data-dir", defaultDataDir(), "directory holding the local store")
	pf.StringVar(&a.server, "server", utils.SafeEnv("EVOA_SERVER_URL", "http://localhost:8080"), "evoa server base URL")
	pf.StringVar(&a.token, "token", utils.SafeEnv("EVOA_TOKEN", ""), "bearer token for the server")
	pf.DurationVar(&a.timeout, "timeout", client.DefaultTimeout, "request timeout")
	pf.BoolVar(&a.noStorage, "no-storage", false, "run without persistent storage")
	pf.StringVar(&a.logLevel, "log-level", utils.SafeEnv("EVOA_LOG_LEVEL", "warn"), "log level")

	root.AddCommand(
		newProfileCmd(a),
		newCatalogCmd(a),
		newLikeCmd(a),
		newLikedCmd(a),
		newCommentCmd(a),
		newAnalyzeCmd(a),
		newAskCmd(a),
		newMeetCmd(a),
		newMeetingsCmd(a),
		newUploadCmd(a),
		newImportCmd(a),
		newResetCmd(a),
		newTokenCmd(a),
	)
	return root
}

// openStore opens the SQLite-backed store once per invocation.
func (a *app) openStore() (*store.LocalStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	opts := store.Options{Now: a.now}
	if a.noStorage {
		a.store = store.New(nil, opts)
		return a.store, nil
	}
	kv, err := db.Open(filepath.Join(a.dataDir, dbFile), "")
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	a.kv = kv
	a.store = store.New(kv, opts)
	logging.Debug("local store opened", "dir", a.dataDir)
	return a.store, nil
}

func (a *app) close() error {
	if a.kv == nil {
		return nil
	}
	err := a.kv.Close()
	a.kv, a.store = nil, nil
	return err
}

func (a *app) client() *client.Client {
	return client.New(a.server, a.token, a.timeout)
}

func (a *app) currentUser() (*store.LocalStore, *models.User, error) {
	s, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	u, err := s.GetUser()
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		return nil, nil, errNoProfile
	}
	return s, u, nil
}

// currentReviewer is currentUser restricted to investor and incubator
// profiles; action names the refused command in the error.
func (a *app) currentReviewer(action string) (*store.LocalStore, *models.User, error) {
	s, u, err := a.currentUser()
	if err != nil {
		return nil, nil, err
	}
	if !models.CanReviewPitches(u.Role) {
		return nil, nil, fmt.Errorf("%w: %s is for investor and incubator profiles, not %s", errNotReviewer, action, u.Role)
	}
	return s, u, nil
}
