package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/unations/tax-engine/internal/config"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/server"
)

// Version is stamped at build time
var Version = "dev"

type rootOptions struct {
	envFile string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:     "taxctl",
		Short:   "Calculate, inspect and file sales tax",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file with engine configuration")

	rootCmd.AddCommand(
		newRatesCommand(opts),
		newPeriodCommand(),
		newCalculateCommand(opts),
		newFileReturnCommand(opts),
		newAssessCommand(opts),
	)
	return rootCmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.InitLogger(cfg.Stage)
	return cfg, nil
}

func (o *rootOptions) connect(cmd *cobra.Command) (*server.Engine, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	engine, err := server.Connect(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting backends: %w", err)
	}
	return engine, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
