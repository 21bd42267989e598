package main

import (
	"fmt"
	"time"

	"saral-hr/internal/bulkattendance"

	"github.com/spf13/cobra"
)

func newCalendarCmd(opts *rootOptions) *cobra.Command {
	var (
		employee string
		year     int
	)
	cmd := &cobra.Command{
		Use:   "calendar --employee <id> [--year 2025]",
		Short: "Print the yearly attendance calendar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			emp, err := resolveEmployee(cmd.Context(), client, employee)
			if err != nil {
				return err
			}

			ctrl := bulkattendance.NewController(client, writerNotifier{out: opts.out})
			cal, err := ctrl.LoadYearCalendar(cmd.Context(), emp, year)
			if err != nil {
				return err
			}
			fmt.Fprintf(opts.out, "%s - %d\n", emp.DisplayName(), cal.Year)
			fmt.Fprintln(opts.out, "P present  A absent  H half day  L LWP  W weekly off  * holiday  > today")
			for _, mc := range cal.Months {
				fmt.Fprintln(opts.out)
				fmt.Fprint(opts.out, bulkattendance.RenderMonthText(mc, cal.Year))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&employee, "employee", "", "company link id, employee id or search term")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "year")
	return cmd
}
