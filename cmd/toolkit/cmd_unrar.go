package main

import (
	"context"
	"errors"
	"fmt"

	"cloudToolkit/internal/archive"
	"cloudToolkit/internal/bootstrap"
	"cloudToolkit/internal/storage"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errNoUnrarSource = errors.New("either --tool-path or --gcs-path (or UNRAR_GCS_PATH) is required")

// Adding the following variable, so that the code can be tested
var newObjectOpener = func(ctx context.Context) (storage.ObjectOpener, func() error, error) {
	g, err := storage.NewGCS(ctx)
	if err != nil {
		return nil, nil, err
	}
	return g, g.Close, nil
}

// unrarSource picks the binary used by the archive subcommands
type unrarSource struct {
	toolPath string
	gcsPath  string
	tempDir  string
}

func (s *unrarSource) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.gcsPath, "gcs-path", "", "gs:// location of the unrar binary (default from UNRAR_GCS_PATH)")
	cmd.Flags().StringVar(&s.tempDir, "temp-dir", "", "directory the binary is downloaded into (default: system temp dir)")
}

// setup downloads the binary and returns an extractor bound to it
func (s *unrarSource) setup(ctx context.Context, a *app) (*archive.Extractor, error) {
	gcsPath := s.gcsPath
	if gcsPath == "" {
		gcsPath = a.cfg.UnrarGCSPath
	}
	if gcsPath == "" {
		return nil, errNoUnrarSource
	}

	opener, closeOpener, err := newObjectOpener(ctx)
	if err != nil {
		return nil, err
	}
	defer closeOpener()

	var opts []bootstrap.Option
	if s.tempDir != "" {
		opts = append(opts, bootstrap.WithTempDir(s.tempDir))
	}
	u, err := bootstrap.NewUnrarSetup(gcsPath, opener, opts...)
	if err != nil {
		return nil, err
	}
	return u.Setup(ctx)
}

// extractor uses --tool-path when given and downloads the binary otherwise
func (s *unrarSource) extractor(ctx context.Context, a *app) (*archive.Extractor, error) {
	if s.toolPath != "" {
		return archive.NewExtractor(s.toolPath), nil
	}
	return s.setup(ctx, a)
}

func newUnrarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unrar",
		Short: "Bootstrap the unrar binary and work with RAR archives",
	}
	cmd.AddCommand(
		newUnrarSetupCmd(a),
		newUnrarListCmd(a),
		newUnrarTestCmd(a),
		newUnrarExtractCmd(a),
	)
	return cmd
}

func newUnrarSetupCmd(a *app) *cobra.Command {
	src := &unrarSource{}
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Download unrar from Cloud Storage, mark it executable and print its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := src.setup(cmd.Context(), a)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ex.ToolPath)
			return nil
		},
	}
	src.bind(cmd)
	return cmd
}

// archiveCmd builds a subcommand that runs against an extractor
func archiveCmd(a *app, use, short string, args cobra.PositionalArgs, run func(*cobra.Command, *archive.Extractor, []string) error) *cobra.Command {
	src := &unrarSource{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := src.extractor(cmd.Context(), a)
			if err != nil {
				return err
			}
			return run(cmd, ex, args)
		},
	}
	cmd.Flags().StringVar(&src.toolPath, "tool-path", "", "path of an unrar binary already on disk")
	src.bind(cmd)
	return cmd
}

func newUnrarListCmd(a *app) *cobra.Command {
	return archiveCmd(a, "list ARCHIVE", "List the files stored in an archive", cobra.ExactArgs(1),
		func(cmd *cobra.Command, ex *archive.Extractor, args []string) error {
			names, err := ex.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		})
}

func newUnrarTestCmd(a *app) *cobra.Command {
	return archiveCmd(a, "test ARCHIVE", "Verify archive integrity", cobra.ExactArgs(1),
		func(cmd *cobra.Command, ex *archive.Extractor, args []string) error {
			if err := ex.Test(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		})
}

func newUnrarExtractCmd(a *app) *cobra.Command {
	return archiveCmd(a, "extract ARCHIVE [DEST]", "Extract an archive, overwriting existing files", cobra.RangeArgs(1, 2),
		func(cmd *cobra.Command, ex *archive.Extractor, args []string) error {
			dest := "."
			if len(args) == 2 {
				dest = args[1]
			}
			if err := ex.Extract(cmd.Context(), args[0], dest); err != nil {
				return err
			}
			log.Info().Str("archive", args[0]).Str("dest", dest).Msg("archive extracted")
			return nil
		})
}
