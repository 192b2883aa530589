package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"cloudToolkit/internal/config"
	"cloudToolkit/internal/logging"

	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand once the root pre-run has loaded it
type app struct {
	cfg *config.Config
}

// newRootCmd builds the toolkit command tree
func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		envFile  string
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:   "toolkit",
		Short: "Operational utilities: port probe, profiling report, secrets and unrar bootstrap",
		Long: `toolkit bundles four independent utilities:

  probe     check whether a TCP port accepts connections
  profile   turn an Excel sheet into a self-contained HTML statistics report
  secret    read a JSON document from Secret Manager or a Kubernetes Secret
  unrar     download the unrar binary from Cloud Storage and drive it

Configuration is read from the environment, optionally seeded from --env-file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := cfg.LogLevel
			if logLevel != "" {
				level = logLevel
			}
			logging.InitTo(cmd.ErrOrStderr(), "toolkit", level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, disabled); overrides LOG_LEVEL")

	rootCmd.AddCommand(
		newProbeCmd(a),
		newProfileCmd(a),
		newSecretCmd(a),
		newUnrarCmd(a),
	)
	return rootCmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
