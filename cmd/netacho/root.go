package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"netacho/internal/commands"
	"netacho/internal/config"
	"netacho/internal/logging"
	"netacho/internal/store"
)

type rootFlags struct {
	configPath string
	dataDir    string
	backend    string
	logLevel   string
	logFormat  string
}

// app is what every subcommand works against once the root has loaded
// configuration and opened the store.
type app struct {
	cfg    *config.Config
	store  store.Store
	router *commands.Router
}

func (a *app) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:   "netacho",
		Short: "Manzai and conte writing assistant served as MCP tools",
		Long: "netacho walks a writer through building a manzai or conte script:\n" +
			"an 18-step interactive wizard, a 14-step guided wizard, and a\n" +
			"five-step full-auto pipeline, all exposed as MCP tools.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to a YAML or JSON config file")
	pf.StringVar(&flags.dataDir, "data-dir", "", "Directory for session documents (file and sqlite backends)")
	pf.StringVar(&flags.backend, "store", "", "Store backend: file, memory, sqlite or redis")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	open := func(cmd *cobra.Command) (*app, error) {
		return openApp(cmd.Context(), cmd, &flags)
	}
	root.AddCommand(
		newServeCmd(open),
		newCallCmd(open),
		newAutoCmd(open),
		newSessionsCmd(open),
		newViewCmd(open),
		newToolsCmd(open),
	)
	return root
}

type opener func(cmd *cobra.Command) (*app, error)

// loadConfig reads the config file (or defaults), applies the environment,
// then any flag the user set explicitly.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.LoadFromPath(flags.configPath)
	if err != nil {
		return nil, err
	}
	changed := cmd.Flags().Changed
	if changed("data-dir") {
		cfg.Store.DataDir = flags.dataDir
	}
	if changed("store") {
		cfg.Store.Backend = flags.backend
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func openApp(ctx context.Context, cmd *cobra.Command, flags *rootFlags) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	level, _ := logging.ParseLevel(cfg.Logging.Level)
	logging.Init(level, cfg.Logging.Format, cmd.ErrOrStderr())

	st, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logging.New("cli").Debug("store opened", "backend", cfg.Store.Backend, "dir", cfg.Store.DataDir)
	return &app{
		cfg:    cfg,
		store:  st,
		router: commands.New(st, cfg.Wizard.SessionKey),
	}, nil
}
