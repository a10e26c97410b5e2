package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	storelink "github.com/storelink/client-go"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	token      string
	baseURL    string
	verbose    bool
}

// RootCmd builds the storelink command tree.
func RootCmd(env *Env, version string) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:     "storelink",
		Short:   "Inspect and operate a StoreLink B2B integration",
		Version: version,
		// Errors are printed by main with the proper exit code.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&flags.token, "token", "", "auth token (overrides config and STORELINK_AUTH_TOKEN)")
	root.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "API base URL (overrides config)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log requests and retries to stderr")

	root.AddCommand(
		storesCmd(env, flags),
		productsCmd(env, flags),
		orderCmd(env, flags),
		orderEventsCmd(env, flags),
		deliveryEventsCmd(env, flags),
		deliveryStatusCmd(env, flags),
		snapshotCmd(env, flags),
	)

	return root
}

// setup resolves config, logger, and client for one command invocation.
func (e *Env) setup(flags *rootFlags) (*storelink.Client, *zap.Logger, error) {
	cfg, err := LoadConfig(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	if flags.token != "" {
		cfg.AuthToken = flags.token
	}
	if flags.baseURL != "" {
		cfg.BaseURL = flags.baseURL
	}

	logger := zap.NewNop()
	if flags.verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, nil, fmt.Errorf("build logger: %w", err)
		}
	}

	client, err := e.client(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, logger, nil
}
