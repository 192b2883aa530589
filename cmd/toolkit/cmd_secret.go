package main

import (
	"cloudToolkit/internal/secrets"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Adding the following variable, so that the code can be tested
var newFetcher = secrets.NewFetcher

func newSecretCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Read JSON secrets",
	}
	cmd.AddCommand(newSecretGetCmd(a))
	return cmd
}

func newSecretGetCmd(a *app) *cobra.Command {
	var (
		version   string
		backend   string
		project   string
		namespace string
	)

	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Print the JSON object stored in a secret version",
		Long: `Fetches a secret and prints its payload parsed as a JSON object.
With the gcp backend, --version is the Secret Manager version. With the kubernetes
backend it selects the data key, and "latest" reads the "payload" key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("backend") {
				backend = a.cfg.SecretBackend
			}
			if !cmd.Flags().Changed("project") {
				project = a.cfg.GCPProject
			}
			if !cmd.Flags().Changed("namespace") {
				namespace = a.cfg.SecretNamespace
			}

			fetcher, closeFetcher, err := newFetcher(cmd.Context(), backend, project, namespace)
			if err != nil {
				return err
			}
			defer closeFetcher()

			data, err := fetcher.GetSecretData(cmd.Context(), args[0], version)
			if err != nil {
				return err
			}
			log.Debug().Str("secret", args[0]).Str("version", version).Str("backend", backend).Msg("secret fetched")
			return printJSON(cmd.OutOrStdout(), data)
		},
	}

	cmd.Flags().StringVar(&version, "version", "latest", "secret version")
	cmd.Flags().StringVar(&backend, "backend", secrets.BackendGCP, "secret backend: gcp or kubernetes (default from SECRET_BACKEND)")
	cmd.Flags().StringVar(&project, "project", "", "GCP project; empty resolves from the environment")
	cmd.Flags().StringVar(&namespace, "namespace", "", "Kubernetes namespace (default from SECRET_NAMESPACE)")
	return cmd
}
