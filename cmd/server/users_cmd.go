package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"property-backend/internal/auth"
	"property-backend/internal/repositories"
	"property-backend/internal/services"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User administration",
	}

	var name, email string
	createAdmin := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account if the email is not registered yet",
		Long:  "The password is read from ADMIN_PASSWORD.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password := os.Getenv("ADMIN_PASSWORD")
			if password == "" {
				return errors.New("ADMIN_PASSWORD is required")
			}
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.shutdown()

			svc := services.NewUserService(
				repositories.NewUserRepository(a.pool),
				repositories.NewTenantRepository(a.pool),
				repositories.NewRevokedTokenRepository(a.pool),
				auth.NewJWTManager(a.cfg.JWT.Secret, a.cfg.JWT.Issuer, a.cfg.JWT.ExpirationHours),
			)
			u, created, err := svc.EnsureAdmin(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (id %d)\n", u.Email, u.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists (id %d)\n", u.Email, u.ID)
			}
			return nil
		},
	}
	createAdmin.Flags().StringVar(&name, "name", "Administrator", "display name")
	createAdmin.Flags().StringVar(&email, "email", "", "login email")
	_ = createAdmin.MarkFlagRequired("email")

	cmd.AddCommand(createAdmin)
	return cmd
}
