package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"awsshell/internal/awsdata"
	"awsshell/internal/completer"
	"awsshell/internal/config"
	"awsshell/internal/docs"
	"awsshell/internal/history"
	"awsshell/internal/shell"
)

const configSection = "aws-shell"

// settingDefaults are written into a fresh config file on first run.
var settingDefaults = map[string]any{
	shell.SettingMatchFuzzy:        false,
	shell.SettingVIBindings:        false,
	shell.SettingCompletionColumns: false,
	shell.SettingShowHelp:          true,
	shell.SettingTheme:             "auto",
}

// shellOptions carries the root command's flags into the wiring.
type shellOptions struct {
	profile   string
	indexPath string
}

// runShell wires the shell's collaborators and drives the engine until the
// session ends.
func runShell(logger *zap.Logger, opts shellOptions) error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	store, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	section := store.Section(configSection)
	section.EnsureDefaults(settingDefaults)
	settings := shell.NewSettings(section)

	index, err := awsdata.LoadOrDefault(opts.indexPath)
	if err != nil {
		return fmt.Errorf("load command index: %w", err)
	}

	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	hist, err := history.Load(filepath.Join(dataDir, "history"))
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	comp := completer.New(index)
	provider := docs.New(index)

	dispatcher := shell.NewDispatcher("aws", hist, logger)
	if opts.profile != "" {
		dispatcher.SetExtraEnv([]string{"AWS_DEFAULT_PROFILE=" + opts.profile})
	}

	builder := &promptBuilder{
		settings:  settings,
		completer: comp,
		docs:      provider,
		history:   hist,
		logger:    logger,
	}

	// The watcher is best-effort: without it the shell still works, it just
	// won't pick up edits made to the config file while running.
	var watcher shell.ChangeWatcher
	if w, err := config.NewWatcher(cfgPath, logger); err != nil {
		logger.Warn("config watcher unavailable", zap.Error(err))
	} else {
		defer w.Close()
		watcher = w
	}

	engine := shell.NewEngine(shell.EngineParams{
		Builder:    builder,
		Dispatcher: dispatcher,
		Store:      store,
		Watcher:    watcher,
		History:    hist,
		Logger:     logger,
	})
	return engine.Run()
}
