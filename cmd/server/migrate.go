package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"property-backend/internal/database"
	"property-backend/migrations"
)

func migrateCmd() *cobra.Command {
	var statusOnly bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.shutdown()

			m := database.NewMigrator(a.pool, migrations.FS, a.log.Named("migrate"))
			if statusOnly {
				pending, err := m.Pending(cmd.Context())
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
				}
				for _, name := range pending {
					fmt.Fprintln(cmd.OutOrStdout(), "pending:", name)
				}
				return nil
			}

			applied, err := m.RunMigrations(cmd.Context())
			if err != nil {
				return err
			}
			a.log.Info("migrations applied", zap.Int("count", applied))
			return nil
		},
	}
	cmd.Flags().BoolVar(&statusOnly, "status", false, "list pending migrations without applying them")
	return cmd
}
