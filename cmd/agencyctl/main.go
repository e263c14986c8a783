package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"agency-backend/internal/client"

	"github.com/spf13/cobra"
)

var (
	apiURL    string
	adminKey  string
	tokenFile string
)

var rootCmd = &cobra.Command{
	Use:           "agencyctl",
	Short:         "Admin command line for the agency API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOrDefault("AGENCY_API_URL", "http://localhost:5000/api"), "API base URL (AGENCY_API_URL)")
	rootCmd.PersistentFlags().StringVar(&adminKey, "admin-key", os.Getenv("ADMIN_API_KEY"), "static admin key (ADMIN_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "where the login token is kept")

	rootCmd.AddCommand(loginCmd, logoutCmd, listCmd, toggleCmd, dashboardCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newClient(cmd *cobra.Command) (*client.Client, error) {
	path := tokenFile
	if path == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	stderr := cmd.ErrOrStderr()
	return client.New(apiURL,
		client.WithTokenStore(client.NewFileTokenStore(path)),
		client.WithAdminKey(adminKey),
		client.WithOnUnauthorized(func() {
			fmt.Fprintln(stderr, "session expired or missing; run `agencyctl login`")
		}),
	)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
