package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	client "github.com/mutablelogic/go-client"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/client/backend"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chatwidget",
		Short:         "Chat widget that forwards messages to a chat backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newChatCmd())
	root.AddCommand(newServeCmd())
	return root
}

// setup loads .env and the environment, configures logging and builds the
// backend client.
func setup() (*config.Config, *backend.Client, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to load .env file, continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	zerolog.SetGlobalLevel(cfg.Log.Level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	opts := []client.ClientOpt{client.OptTimeout(cfg.Backend.Timeout)}
	if cfg.Backend.Trace {
		opts = append(opts, client.OptTrace(os.Stderr, true))
	}

	sender, err := backend.New(cfg.Backend.URL, cfg.Backend.Path, opts...)
	if err != nil {
		return nil, nil, err
	}

	log.Debug().Str("backend", cfg.Backend.URL).Str("path", cfg.Backend.Path).Msg("chat backend configured")
	return cfg, sender, nil
}
