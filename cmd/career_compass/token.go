package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-compass/internal/config"
	"github.com/jonathan/career-compass/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the HTTP API",
	Long:  "Sign a token with JWT_SECRET for the given caller. Only needed when the server runs with authentication enabled.",
	RunE:  runToken,
}

var tokenCaller string

func init() {
	tokenCmd.Flags().StringVar(&tokenCaller, "caller", "", "Name of the client the token is issued to (required)")
	_ = tokenCmd.MarkFlagRequired("caller")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	return issueToken(cmd.OutOrStdout(), cfg, tokenCaller)
}

func issueToken(out io.Writer, cfg *config.Config, caller string) error {
	jwtConfig, err := cfg.JWT()
	if err != nil {
		return fmt.Errorf("invalid JWT configuration: %w", err)
	}
	if jwtConfig == nil {
		return fmt.Errorf("JWT_SECRET is not set; the server runs without authentication")
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(caller)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
