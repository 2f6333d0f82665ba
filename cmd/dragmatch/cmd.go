package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/drag-match/config"
	"github.com/lixenwraith/drag-match/content"
	"github.com/lixenwraith/drag-match/host"
)

func newCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "dragmatch",
		Short:         "Drag letter, number, and shape pieces onto their matching slots.",
		Args:          cobra.ExactArgs(0),
		Version:       host.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cfg)
		},
	}
	config.GameFlags(root.PersistentFlags(), cfg)
	config.BindEnv(root.PersistentFlags())

	play := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal (mouse required)",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cfg)
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game to browsers over websocket",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	config.ServerFlags(serve.Flags(), cfg)
	config.BindEnv(serve.Flags())

	root.AddCommand(play, serve)
	root.CompletionOptions.HiddenDefaultCmd = true
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	root.SetVersionTemplate("dragmatch v{{.Version}}\n")

	return root
}

// loadCatalog reads packs from the configured directory or falls back to the embedded pack
func loadCatalog(cfg *config.Config) (*content.Catalog, error) {
	m := content.NewManager(cfg.PackDir)
	if err := m.DiscoverPacks(); err != nil {
		return nil, err
	}
	return m.Catalog()
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	} else if cfg.Verbose {
		// Request log goes to the console when no debug file is open
		log.SetFlags(0)
		log.SetOutput(os.Stdout)
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("load packs: %w", err)
	}
	srv, err := host.New(cfg, catalog)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Serve(ctx)
}
