// sitectl is the batch tooling companion to the site server: it runs the CI
// guard checks and regenerates the block catalog artifact.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/floranaubry/dev2-interweb-site/internal/blocks"
	"github.com/floranaubry/dev2-interweb-site/internal/catalog"
	"github.com/floranaubry/dev2-interweb-site/internal/compose"
	"github.com/floranaubry/dev2-interweb-site/internal/di"
	"github.com/floranaubry/dev2-interweb-site/internal/guard"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/config"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/observability"
	"github.com/floranaubry/dev2-interweb-site/internal/registry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Batch tooling for the site content pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGuardCmd())
	root.AddCommand(newCatalogCmd())
	return root
}

func buildContainer(ctx context.Context) (*di.Container, *zap.Logger, error) {
	logger, err := observability.NewLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("initialise logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	container, err := di.NewContainer(ctx, cfg, logger, compose.ContextTooling)
	if err != nil {
		return nil, nil, err
	}
	return container, logger, nil
}

func builtinRegistries() (*registry.Sections, *registry.Shells, *registry.Packs) {
	logger := zap.NewNop()
	sections := registry.NewSections(logger)
	shells := registry.NewShells(logger)
	blocks.RegisterAll(sections, shells)
	return sections, shells, registry.NewPacks(blocks.DefaultPacks(), logger)
}

func newGuardCmd() *cobra.Command {
	var skipContent bool

	cmd := &cobra.Command{
		Use:   "guard",
		Short: "Validate registries and stored content; non-zero exit on any finding",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var problems []guard.Problem
			if skipContent {
				// Registry checks need no content source.
				sections, shells, _ := builtinRegistries()
				problems = guard.CheckRegistries(sections, shells)
			} else {
				container, _, err := buildContainer(ctx)
				if err != nil {
					return err
				}
				defer container.Close()

				problems = guard.CheckRegistries(container.Sections, container.Shells)
				contentProblems, err := guard.CheckContent(ctx, container.Store, container.Sections, container.Shells, container.Packs)
				if err != nil {
					return err
				}
				problems = append(problems, contentProblems...)
			}

			if len(problems) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "guard: ok")
				return nil
			}
			for _, p := range problems {
				fmt.Fprintln(cmd.ErrOrStderr(), "guard:", p.String())
			}
			return fmt.Errorf("guard found %d problem(s)", len(problems))
		},
	}
	cmd.Flags().BoolVar(&skipContent, "skip-content", false, "only check the registries, not stored content")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	var (
		outPath string
		check   bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Export the block catalog artifact, or verify it with --check",
		RunE: func(cmd *cobra.Command, _ []string) error {
			container, _, err := buildContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer container.Close()

			doc, err := catalog.Export(container.Sections, container.Shells, container.Packs)
			if err != nil {
				return err
			}

			if check {
				committed, err := os.ReadFile(outPath)
				if err != nil {
					return fmt.Errorf("read committed catalog: %w", err)
				}
				committedHash, err := catalog.HashOf(committed)
				if err != nil {
					return err
				}
				if committedHash != doc.Hash {
					return fmt.Errorf("catalog drift: committed %s, computed %s; rerun sitectl catalog", committedHash, doc.Hash)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "catalog: up to date")
				return nil
			}

			artifact, err := doc.JSON()
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, artifact, 0o644); err != nil {
				return fmt.Errorf("write catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog: wrote %s (%s)\n", outPath, doc.Hash)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "catalog.json", "catalog artifact path")
	cmd.Flags().BoolVar(&check, "check", false, "verify the committed artifact instead of writing")
	return cmd
}
