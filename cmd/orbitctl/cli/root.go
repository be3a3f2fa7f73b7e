package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"orbittrack/internal/client"
	"orbittrack/internal/config"
	"orbittrack/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultEndpoint = "http://127.0.0.1:4000/graphql"

var (
	endpoint  string
	publicKey string
	timeout   time.Duration
	logLevel  string

	rootCmd = &cobra.Command{
		Use:           "orbitctl",
		Short:         "OrbitTrack GraphQL 命令行客户端",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(&config.LogConfig{Level: logLevel, Format: "console", Output: "stderr"})
		},
	}
)

// Execute 注册子命令并执行
func Execute() error {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", envOr("ORBIT_ENDPOINT", defaultEndpoint), "GraphQL endpoint")
	rootCmd.PersistentFlags().StringVar(&publicKey, "public-key", os.Getenv("ORBIT_PUBLIC_KEY"), "wallet public key, sent as x-public-key")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	rootCmd.AddCommand(
		TrendingCmd(),
		TokensCmd(),
		FavoritesCmd(),
		FavCmd(),
		UnfavCmd(),
		ToggleCmd(),
		UserCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() *client.Client {
	return client.New(endpoint, publicKey, &http.Client{Timeout: timeout})
}

func requireWallet() error {
	if publicKey == "" {
		return client.ErrNoWallet
	}
	return nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}
