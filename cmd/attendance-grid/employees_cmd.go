package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"saral-hr/internal/bulkattendance"

	"github.com/spf13/cobra"
)

func newEmployeesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "employees [term]",
		Short: "List active employees, optionally filtered by name, employee id or aadhaar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			term := ""
			if len(args) == 1 {
				term = args[0]
			}

			searcher := bulkattendance.NewSearcher(client)
			if err := searcher.LoadEmployees(cmd.Context()); err != nil {
				return fmt.Errorf("load employees: %w", err)
			}
			list, err := searcher.SearchNow(cmd.Context(), term)
			if err != nil {
				return fmt.Errorf("search employees: %w", err)
			}

			w := tabwriter.NewWriter(opts.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LINK\tEMPLOYEE\tNAME\tCOMPANY\tWEEKLY OFF")
			for _, e := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.LinkID, e.EmployeeID, e.DisplayName(), e.Company, e.WeeklyOff)
			}
			return w.Flush()
		},
	}
}

// resolveEmployee mencocokkan link id / employee id secara persis dulu,
// lalu pencarian; hasil lebih dari satu dianggap ambigu.
func resolveEmployee(ctx context.Context, client bulkattendance.RemoteProcedureClient, ref string) (bulkattendance.Employee, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return bulkattendance.Employee{}, fmt.Errorf("--employee is required")
	}

	searcher := bulkattendance.NewSearcher(client)
	if err := searcher.LoadEmployees(ctx); err != nil {
		return bulkattendance.Employee{}, fmt.Errorf("load employees: %w", err)
	}
	for _, e := range searcher.Employees() {
		if strings.EqualFold(e.LinkID, ref) || strings.EqualFold(e.EmployeeID, ref) {
			return e, nil
		}
	}

	found, err := searcher.SearchNow(ctx, ref)
	if err != nil && len(found) == 0 {
		return bulkattendance.Employee{}, fmt.Errorf("search employees: %w", err)
	}
	switch len(found) {
	case 0:
		return bulkattendance.Employee{}, fmt.Errorf("no active employee matches %q", ref)
	case 1:
		return found[0], nil
	}
	names := make([]string, 0, len(found))
	for _, e := range found {
		names = append(names, e.LinkID+" "+e.DisplayName())
	}
	return bulkattendance.Employee{}, fmt.Errorf("%q matches %d employees, use a link id:\n  %s", ref, len(found), strings.Join(names, "\n  "))
}
