// Command portfolioctl runs schema migrations and content seeding outside the
// HTTP server, and reports what is currently applied.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"portfolio-api/internal/app"
	"portfolio-api/internal/config"
	"portfolio-api/internal/database/seeder"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var timeout time.Duration

	root := &cobra.Command{
		Use:          "portfolioctl",
		Short:        "Manage the portfolio database",
		SilenceUsage: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline for the command")

	root.AddCommand(
		newMigrateCmd(&timeout),
		newSeedCmd(&timeout),
		newStatusCmd(&timeout),
	)
	return root
}

// withContainer loads config, connects and hands a ready container to fn.
func withContainer(parent context.Context, timeout time.Duration, fn func(ctx context.Context, c *app.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("[CLI] close: %v", err)
		}
	}()

	return fn(ctx, c)
}

func newMigrateCmd(timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd.Context(), *timeout, func(ctx context.Context, c *app.Container) error {
				if err := c.Migrate(ctx); err != nil {
					return err
				}
				st, err := c.Migrator.Status(ctx, c.DB.SQLDB())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tFILE\tAPPLIED AT")
				for _, s := range st {
					at := "pending"
					if s.Applied {
						at = s.AppliedAt.Format(time.RFC3339)
					}
					fmt.Fprintf(w, "%d\t%s\t%s\n", s.Version, s.Name, at)
				}
				return w.Flush()
			})
		},
	}
}

func newSeedCmd(timeout *time.Duration) *cobra.Command {
	var rawMode string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Bring stored content in line with the embedded content document",
		Long: "Runs the seed routine. reconcile upserts the document and prunes rows it no longer names;\n" +
			"reset wipes and rewrites content only when it is missing or stale; off does nothing.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd.Context(), *timeout, func(ctx context.Context, c *app.Container) error {
				mode := c.Config.Seed.Mode
				if cmd.Flags().Changed("mode") {
					m, err := config.ParseSeedMode(rawMode)
					if err != nil {
						return err
					}
					mode = m
				}
				res, err := c.Seed(ctx, mode)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringVar(&rawMode, "mode", string(config.SeedModeReconcile), "seed mode: reconcile, reset or off (defaults to SEED_MODE)")
	return cmd
}

type statusReport struct {
	Checksum        string         `json:"checksum"`
	AppliedChecksum string         `json:"appliedChecksum"`
	Current         bool           `json:"current"`
	HasProfile      bool           `json:"hasProfile"`
	Counts          seeder.Counts  `json:"counts"`
	Expected        seeder.Counts  `json:"expected"`
	Contacts        int            `json:"contactMessages"`
	Migrations      []migrationRow `json:"migrations"`
}

type migrationRow struct {
	Version int64  `json:"version"`
	File    string `json:"file"`
	Applied bool   `json:"applied"`
}

func newStatusCmd(timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration and content state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd.Context(), *timeout, func(ctx context.Context, c *app.Container) error {
				migs, err := c.Migrator.Status(ctx, c.DB.SQLDB())
				if err != nil {
					return err
				}
				rep := statusReport{
					Checksum: c.Content.Checksum(),
					Expected: seeder.Counts{
						Experiences: len(c.Content.Experiences),
						Education:   len(c.Content.Education),
						Projects:    len(c.Content.Projects),
						Skills:      len(c.Content.Skills),
					},
					Migrations: make([]migrationRow, 0, len(migs)),
				}
				for _, m := range migs {
					rep.Migrations = append(rep.Migrations, migrationRow{Version: m.Version, File: m.Name, Applied: m.Applied})
				}

				if err := c.Store.Check(ctx); err != nil {
					log.Printf("[CLI] content tables not ready: %v", err)
					return writeJSON(cmd.OutOrStdout(), rep)
				}

				st, err := c.Store.State(ctx)
				if err != nil {
					return err
				}
				rep.AppliedChecksum = st.Checksum
				rep.HasProfile = st.HasProfile
				rep.Counts = st.Counts
				rep.Current = seeder.Current(st, c.Content, rep.Checksum)

				n, err := c.Contacts.CountContactMessages(ctx)
				if err != nil {
					return err
				}
				rep.Contacts = n
				return writeJSON(cmd.OutOrStdout(), rep)
			})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
