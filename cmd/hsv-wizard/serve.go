package main

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/hsv-wizard/internal/server"
	"github.com/ironsheep/hsv-wizard/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an HSV wizard session over MCP on stdin/stdout",
	Long: `Start the MCP server. It communicates via JSON-RPC over stdin/stdout and
is meant to be launched by an MCP client.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	log.Debug().Str("version", Version).Str("build_time", BuildTime).Str("commit", GitCommit).Msg("hsv-wizard server starting")

	srv := server.New(Version, log, session.OptionsFromConfig(cfg)...)
	return srv.Run()
}
