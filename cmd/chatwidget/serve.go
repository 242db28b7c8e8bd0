package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/handler"
	chatService "github.com/zhouzirui/z-tavern/chatwidget/internal/service/chat"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/service/widget"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve widget sessions over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, sender, err := setup()
			if err != nil {
				return err
			}

			sessions := chatService.NewService(sender, widget.WithLogger(log.Logger))
			defer sessions.Close()

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           handler.NewRouter(sessions),
				ReadHeaderTimeout: 5 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			log.Info().Str("addr", cfg.Server.Addr).Str("backend", cfg.Backend.URL).Msg("chat widget listening")
			return runServer(cmd.Context(), srv)
		},
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
