package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func alertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Alert sweep commands",
	}

	var days []int
	var date string
	send := &cobra.Command{
		Use:   "send",
		Short: "Run one alert sweep and print its summary",
		Example: "  property-backend alerts send --alert-days 5 --alert-days 1\n" +
			"  property-backend alerts send --alert-days 5,1 --date 2026-10-17",
		RunE: func(cmd *cobra.Command, args []string) error {
			// accept bare trailing numbers: --alert-days 5 1
			for _, arg := range args {
				var n int
				if _, err := fmt.Sscanf(arg, "%d", &n); err != nil {
					return fmt.Errorf("unexpected argument %q", arg)
				}
				days = append(days, n)
			}

			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.shutdown()

			sum, err := a.alertService().Run(cmd.Context(), days, date)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(sum, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			if sum.Failed > 0 {
				return fmt.Errorf("%d alerts failed", sum.Failed)
			}
			return nil
		},
	}
	send.Flags().IntSliceVar(&days, "alert-days", nil, "lead days before the due or check-out date (default from config)")
	send.Flags().StringVar(&date, "date", "", "sweep as if today were this date (YYYY-MM-DD)")

	cmd.AddCommand(send)
	return cmd
}
