package main

import (
	"time"

	"cloudToolkit/internal/probe"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newProbeCmd(a *app) *cobra.Command {
	var (
		host    string
		port    int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check whether a TCP port accepts connections",
		Long: `Attempts one TCP connect and prints {"open": true|false} or {"error": "..."}.
Defaults come from PROBE_HOST, PROBE_PORT and PROBE_TIMEOUT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &probe.Prober{
				Host:    a.cfg.ProbeHost,
				Port:    a.cfg.ProbePort,
				Timeout: a.cfg.ProbeTimeout,
			}
			if cmd.Flags().Changed("host") {
				p.Host = host
			}
			if cmd.Flags().Changed("port") {
				p.Port = port
			}
			if cmd.Flags().Changed("timeout") {
				p.Timeout = timeout
			}

			result := p.Probe(cmd.Context())
			log.Debug().Str("address", p.Address()).Str("outcome", result.Outcome()).Msg("probe finished")
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&host, "host", probe.DefaultHost, "target host")
	cmd.Flags().IntVar(&port, "port", probe.DefaultPort, "target TCP port")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "connect timeout; 0 keeps the platform default")
	return cmd
}
