package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"saral-hr/internal/salaryslip"

	"github.com/spf13/cobra"
)

func newEligibilityCmd(opts *rootOptions) *cobra.Command {
	var (
		p       periodOptions
		company string
	)
	cmd := &cobra.Command{
		Use:   "eligibility [--company <id>] [--year 2025 --month March]",
		Short: "Check which employees can get a salary slip for the month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			month, err := p.month()
			if err != nil {
				return err
			}

			var result salaryslip.EligibilityResult
			args := map[string]any{"company": company, "year": p.Year, "month": month.String()}
			if err := client.Call(cmd.Context(), salaryslip.MethodEligibleEmployees, args, &result); err != nil {
				return err
			}

			fmt.Fprintf(opts.out, "Eligible: %d  Skipped: %d\n", len(result.Eligible), len(result.Skipped))
			w := tabwriter.NewWriter(opts.out, 0, 0, 2, ' ', 0)
			for _, e := range result.Eligible {
				fmt.Fprintf(w, "  ok\t%s\t%s\t%s\n", e.Employee, e.EmployeeName, e.Department)
			}
			for _, s := range result.Skipped {
				fmt.Fprintf(w, "  skip\t%s\t%s\t%s\n", s.Employee, s.EmployeeName, strings.Join(skipTags(salaryslip.ClassifySkipReasons(s.Reasons)), ","))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return nil
		},
	}
	p.bind(cmd)
	cmd.Flags().StringVar(&company, "company", "", "company id, defaults to the token's company")
	return cmd
}

func skipTags(f salaryslip.SkipFlags) []string {
	var tags []string
	if f.NoSalaryStructure {
		tags = append(tags, "no-structure")
	}
	if f.NoVariablePay {
		tags = append(tags, "no-variable-pay")
	}
	if f.DuplicateSlip {
		tags = append(tags, "slip-exists")
	}
	if f.NoAttendance {
		tags = append(tags, "no-attendance")
	}
	return tags
}
