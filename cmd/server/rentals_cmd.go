package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"property-backend/internal/repositories"
	"property-backend/internal/services"
	"property-backend/internal/timeutil"
)

func rentalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rentals",
		Short: "Rental maintenance commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list-expired",
		Short: "List occupied rentals whose check-out date has passed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.shutdown()

			svc := services.NewRentalService(a.pool, repositories.NewRentalRepository(a.pool), repositories.NewPropertyRepository(a.pool), a.guard(), a.log)
			rentals, err := svc.ListExpired(cmd.Context(), timeutil.Today())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPROPERTY\tTENANT\tCHECK-OUT")
			for _, r := range rentals {
				checkOut := ""
				if r.CheckOut != nil {
					checkOut = r.CheckOut.Format(timeutil.DateLayout)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.PropertyName, r.TenantName, checkOut)
			}
			return w.Flush()
		},
	})
	return cmd
}
