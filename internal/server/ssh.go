// Package server provides SSH server functionality for boxdeck.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/charmbracelet/ssh"

	"github.com/Gaurav-Gosain/boxdeck/internal/accounts"
	"github.com/Gaurav-Gosain/boxdeck/internal/app"
	"github.com/Gaurav-Gosain/boxdeck/internal/config"
	"github.com/Gaurav-Gosain/boxdeck/internal/prefs"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string // defaults to ~/.ssh/boxdeck_host_key

	// DataPath is the account dataset shared by every session. Empty serves
	// an empty in-memory dataset.
	DataPath string
	// PrefsPath is the preference file shared by every session. Empty uses
	// prefs.DefaultPath.
	PrefsPath string

	Config *config.UserConfig
}

// sshServer holds the state shared by all sessions of one server.
type sshServer struct {
	cfg      *SSHServerConfig
	registry *config.KeybindRegistry
	data     *accounts.Dataset
	prefs    prefs.Store
	hub      *Hub
}

// StartSSHServer initializes and runs the SSH server until ctx is done.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	hostKeyPath, err := resolveHostKeyPath(cfg.KeyPath)
	if err != nil {
		return err
	}
	if cfg.Config == nil {
		cfg.Config = config.DefaultConfig()
	}

	data := accounts.NewDataset()
	if cfg.DataPath != "" {
		if data, err = accounts.LoadDataset(cfg.DataPath); err != nil {
			return err
		}
	}

	prefsPath := cfg.PrefsPath
	if prefsPath == "" {
		if prefsPath, err = prefs.DefaultPath(); err != nil {
			return err
		}
	}
	store, err := prefs.OpenFileStore(prefsPath)
	if err != nil {
		return err
	}

	hub := NewHub()
	s := &sshServer{
		cfg:      cfg,
		registry: config.NewKeybindRegistry(cfg.Config),
		data:     data,
		prefs:    NotifyingStore(store, func() { hub.Broadcast(app.PrefsChangedMsg{}) }),
		hub:      hub,
	}

	// Writes from other processes arrive through the watcher.
	go func() {
		if err := prefs.Watch(ctx, store, func() { hub.Broadcast(app.PrefsChangedMsg{}) }); err != nil {
			log.Warn("prefs watcher stopped", "err", err)
		}
	}()

	server, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			// Bubble Tea middleware for interactive sessions
			bubbletea.Middleware(s.teaHandler),
			// Logging middleware for connection tracking
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	go func() {
		log.Info("starting SSH server", "addr", server.Addr, "data", cfg.DataPath, "prefs", prefsPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("SSH server error", "err", err)
		}
	}()

	<-ctx.Done()

	log.Info("shutting down SSH server")
	hub.Close()
	return server.Shutdown(context.WithoutCancel(ctx))
}

func resolveHostKeyPath(keyPath string) (string, error) {
	if keyPath != "" {
		return keyPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ssh", "boxdeck_host_key"), nil
}

// teaHandler creates a dashboard for each SSH session.
func (s *sshServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, active := sshSession.Pty()
	if !active {
		log.Warn("refusing session without a PTY", "user", sshSession.User())
		return nil, nil
	}

	id, events := s.hub.Subscribe()
	go func() {
		<-sshSession.Context().Done()
		s.hub.Unsubscribe(id)
		log.Debug("session closed", "user", sshSession.User(), "session", id)
	}()
	log.Debug("session opened", "user", sshSession.User(), "session", id,
		"width", pty.Window.Width, "height", pty.Window.Height)

	dashboard := app.New(app.Options{
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
		Config:   s.cfg.Config,
		Registry: s.registry,
		Source:   s.data,
		Prefs:    s.prefs,
		Events:   events,
		Callbacks: app.Callbacks{
			OnDataChanged: func() { s.hub.Broadcast(app.DataChangedMsg{}) },
		},
	})

	return dashboard, []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
	}
}
