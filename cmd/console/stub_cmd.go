package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/propdesk/propdesk/stub"
)

func newStubCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local backend with seeded demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The real backend serves under /api/, so the stub mounts there
			// too and the console's default base URL works unchanged.
			root := chi.NewRouter()
			root.Mount("/api", stub.New().Handler())

			server := &http.Server{Addr: addr, Handler: root}
			go listenAndServe(server)
			waitForStopSignal()
			return shutdown(server)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8000", "listen address")
	return cmd
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("stub backend listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
