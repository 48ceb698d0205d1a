package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/accounts"
	"github.com/Gaurav-Gosain/boxdeck/internal/app"
	"github.com/Gaurav-Gosain/boxdeck/internal/config"
	"github.com/Gaurav-Gosain/boxdeck/internal/logging"
	"github.com/Gaurav-Gosain/boxdeck/internal/prefs"
	"github.com/Gaurav-Gosain/boxdeck/internal/server"
	"github.com/Gaurav-Gosain/boxdeck/internal/theme"
)

// filterMouseMotion filters out redundant mouse motion events to reduce CPU usage.
// Only passes through mouse motion while a drag, resize or splitter session is active.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}

	d, ok := model.(*app.Dashboard)
	if !ok {
		return msg
	}

	if d.Interacting() {
		return msg
	}

	return nil
}

// loadConfig reads the user config and applies command line overrides.
func loadConfig() *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ThemeName:     themeName,
		AutoCopyFirst: autoCopyFirst,
	}, userConfig)

	if err := theme.Initialize(userConfig.Appearance.Theme); err != nil {
		log.Warn("theme", "err", err)
	}
	return userConfig
}

func loadDataset(path string) (*accounts.Dataset, error) {
	if path == "" {
		return accounts.NewDataset(), nil
	}
	data, err := accounts.LoadDataset(path)
	if err != nil {
		return nil, fmt.Errorf("could not load dataset: %w", err)
	}
	return data, nil
}

func runLocal() error {
	if err := logging.Init("", debugMode); err != nil {
		return err
	}
	defer func() { _ = logging.Close() }()
	if debugMode {
		fmt.Println("Debug mode enabled, logging to", logging.Path())
	}

	userConfig := loadConfig()
	if debugMode {
		configPath, _ := config.GetConfigPath()
		log.Debug("configuration", "path", configPath)
	}

	data, err := loadDataset(dataPath)
	if err != nil {
		return err
	}

	prefsPath, err := prefs.DefaultPath()
	if err != nil {
		return err
	}
	store, err := prefs.OpenFileStore(prefsPath)
	if err != nil {
		return err
	}

	dashboard := app.New(app.Options{
		Config:   userConfig,
		Registry: config.NewKeybindRegistry(userConfig),
		Source:   data,
		Prefs:    store,
	})

	p := tea.NewProgram(
		dashboard,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pick up hotkeys saved by another boxdeck process.
	go func() {
		if err := prefs.Watch(ctx, store, func() { p.Send(app.PrefsChangedMsg{}) }); err != nil {
			log.Warn("prefs watcher stopped", "err", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSHServer(sshHost, sshPort, sshKeyPath string) error {
	if debugMode {
		log.SetLevel(log.DebugLevel)
		fmt.Println("Debug mode enabled")
	}

	userConfig := loadConfig()

	log.Info("starting boxdeck SSH server", "host", sshHost, "port", sshPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info("shutting down SSH server...")
		cancel()
	}()

	cfg := &server.SSHServerConfig{
		Host:     sshHost,
		Port:     sshPort,
		KeyPath:  sshKeyPath,
		DataPath: dataPath,
		Config:   userConfig,
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}
