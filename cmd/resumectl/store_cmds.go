package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"resume-generator/internal/bootstrap"
	"resume-generator/internal/resumes"
	"resume-generator/internal/shared/config"
)

// openService builds the same resume service the API server uses, from the
// environment configuration.
var openService = func(ctx context.Context) (*resumes.Service, func() error, error) {
	cfg := config.Load()
	cfg.ArtifactCache = config.CacheNone
	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return app.ResumeService, app.Close, nil
}

func newImportCmd(root *rootOptions) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Store record files in the configured resume store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, closeFn, err := openService(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			for _, path := range args {
				rec, err := readRecord(path, cmd.InOrStdin())
				if err != nil {
					return err
				}
				_, err = svc.Create(ctx, rec)
				if errors.Is(err, resumes.ErrAlreadyExists) && replace {
					_, err = svc.Update(ctx, rec.Name, rec)
				}
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", rec.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "overwrite records that already exist")
	return cmd
}

func newExportCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export NAME",
		Short: "Print a stored record as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, closeFn, err := openService(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			stored, err := svc.Get(ctx, args[0])
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(stored.Record); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
