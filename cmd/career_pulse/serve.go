package main

import (
	"fmt"

	"github.com/jonathan/career-pulse/internal/server"
	"github.com/jonathan/career-pulse/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for editing resumes and requesting suggestions.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}

	port := sess.cfg.Port
	if servePort > 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:           port,
		Store:          sess.store,
		Gateway:        sess.gateway,
		Logger:         sess.log,
		RateLimit:      ratelimit.LoadConfig(),
		AllowedOrigins: sess.cfg.AllowedOrigins(),
	})
	if err != nil {
		sess.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Start closes the store and the gateway on shutdown.
	return srv.Start(cmd.Context())
}
