package cmd

import (
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tools to an agent framework over MCP stdio",
	Long: `Start an MCP server on stdin/stdout exposing the Bitbucket tools.

This is the command an agent framework configures as the server
executable. Logs go to stderr so they never mix with the protocol.`,
	RunE: runServe,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := injectServer(cfg)

	logger.Info("Starting MCP server on stdio...")
	return server.Run(ctx)
}
