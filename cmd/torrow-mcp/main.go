// torrow-mcp: Torrow notes MCP server.
//
// Exposes Torrow notes to AI assistants as a two-level hierarchy of
// archives containing notes, with a per-session selection cursor.
//
// Usage:
//
//	torrow-mcp serve        # stdio transport
//	torrow-mcp serve-http   # streamable HTTP transport
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/torrowlabs/torrow-mcp/internal/config"
	"github.com/torrowlabs/torrow-mcp/internal/server"
)

func main() {
	// Stdout belongs to the stdio transport; everything we say goes
	// to stderr.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "torrow-mcp",
	})

	var configPath string

	rootCmd := &cobra.Command{
		Use:   "torrow-mcp",
		Short: "MCP server for Torrow notes",
		Long: "torrow-mcp exposes Torrow notes to AI assistants as archives containing notes,\n" +
			"with phrase-based creation ('<name>.<text> #tag') and a per-session selection.",
		SilenceUsage: true,
	}
	rootCmd.Version = server.Version
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cfg.Token == "" {
				return errors.New("no Torrow token: set TORROW_TOKEN or the token config key")
			}

			logger.Info("starting stdio transport", "server", cfg.ServerName, "version", server.Version)
			return mcpserver.ServeStdio(server.New(cfg))
		},
	}

	var host string
	var port int
	serveHTTPCmd := &cobra.Command{
		Use:   "serve-http",
		Short: "Serve MCP over streamable HTTP",
		Long: "Serves MCP over streamable HTTP. Each session authenticates with its own\n" +
			"'Authorization: Bearer <token>' header; the configured token is only used\n" +
			"when TORROW_DANGEROUSLY_OMIT_AUTH=1.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cfg.DangerouslyOmitAuth {
				logger.Warn("per-session auth disabled, falling back to the configured token")
			}

			httpServer := mcpserver.NewStreamableHTTPServer(
				server.New(cfg),
				mcpserver.WithHTTPContextFunc(server.HTTPContextFunc),
			)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("starting HTTP transport", "addr", cfg.Addr(), "version", server.Version)
				errCh <- httpServer.Start(cfg.Addr())
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("shutting down", "signal", sig)
				return httpServer.Shutdown(cmd.Context())
			}
		},
	}
	serveHTTPCmd.Flags().StringVar(&host, "host", config.DefaultHost, "Listen host")
	serveHTTPCmd.Flags().IntVar(&port, "port", config.DefaultPort, "Listen port")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(serveHTTPCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
