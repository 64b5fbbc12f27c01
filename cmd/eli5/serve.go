package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"eli5/internal/server"
)

var (
	serveAddr string
	serveDocs string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve generated documentation over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&serveDocs, "docs", "", "docs directory to serve (default: output.dir from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	addr := cfg.HTTP.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	docsDir := cfg.Output.Dir
	if serveDocs != "" {
		docsDir = serveDocs
	}

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.New(docsDir, log),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("serving documentation", "addr", addr, "docs_dir", docsDir)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
