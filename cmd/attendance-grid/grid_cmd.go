package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"saral-hr/internal/bulkattendance"
	"saral-hr/internal/shared/period"

	"github.com/spf13/cobra"
)

type periodOptions struct {
	Employee string
	Year     int
	Month    string
}

func (p *periodOptions) bind(cmd *cobra.Command) {
	now := time.Now()
	cmd.Flags().StringVar(&p.Employee, "employee", "", "company link id, employee id or search term")
	cmd.Flags().IntVar(&p.Year, "year", now.Year(), "year")
	cmd.Flags().StringVar(&p.Month, "month", now.Month().String(), "month name or number")
}

func (p *periodOptions) month() (time.Month, error) {
	m, err := period.ParseMonth(p.Month)
	if err != nil {
		return 0, fmt.Errorf("invalid --month %q", p.Month)
	}
	return m, nil
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var p periodOptions
	cmd := &cobra.Command{
		Use:   "show --employee <id> [--year 2025 --month March]",
		Short: "Show the attendance grid and counts for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			month, err := p.month()
			if err != nil {
				return err
			}
			emp, err := resolveEmployee(cmd.Context(), client, p.Employee)
			if err != nil {
				return err
			}

			ctrl := bulkattendance.NewController(client, writerNotifier{out: opts.out})
			grid, err := ctrl.Load(cmd.Context(), emp, p.Year, month)
			if err != nil {
				return err
			}
			return printGrid(opts.out, grid)
		},
	}
	p.bind(cmd)
	return cmd
}

type markOptions struct {
	periodOptions
	Set      []string
	Bulk     string
	Override []string
	Clear    []string
	DryRun   bool
}

func newMarkCmd(opts *rootOptions) *cobra.Command {
	var m markOptions
	cmd := &cobra.Command{
		Use:   "mark --employee <id> [--set 2025-03-03=Absent] [--bulk Present] [--override 2025-03-08]",
		Short: "Edit the grid and save it in one batch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			month, err := m.month()
			if err != nil {
				return err
			}
			edits, err := parseEdits(m.Set)
			if err != nil {
				return err
			}
			var bulk bulkattendance.Status
			if m.Bulk != "" {
				s, ok := bulkattendance.ParseStatus(m.Bulk)
				if !ok {
					return fmt.Errorf("invalid --bulk status %q", m.Bulk)
				}
				bulk = s
			}
			emp, err := resolveEmployee(cmd.Context(), client, m.Employee)
			if err != nil {
				return err
			}

			ctrl := bulkattendance.NewController(client, writerNotifier{out: opts.out})
			grid, err := ctrl.Load(cmd.Context(), emp, m.Year, month)
			if err != nil {
				return err
			}
			if err := applyEdits(opts.out, grid, m.Override, m.Clear, edits, bulk); err != nil {
				return err
			}

			if m.DryRun {
				return printGrid(opts.out, grid)
			}
			reloaded, result, err := ctrl.Save(cmd.Context(), grid)
			if err != nil {
				return err
			}
			for _, e := range result.Errors {
				fmt.Fprintln(opts.out, "  "+e)
			}
			if reloaded == nil {
				return nil
			}
			return printGrid(opts.out, reloaded)
		},
	}
	m.bind(cmd)
	cmd.Flags().StringArrayVar(&m.Set, "set", nil, "date=status, repeatable")
	cmd.Flags().StringVar(&m.Bulk, "bulk", "", "mark every editable day with this status")
	cmd.Flags().StringArrayVar(&m.Override, "override", nil, "turn a date into Holiday/Weekly Off, repeatable")
	cmd.Flags().StringArrayVar(&m.Clear, "clear-override", nil, "release a Holiday/Weekly Off date for free selection, repeatable")
	cmd.Flags().BoolVar(&m.DryRun, "dry-run", false, "print the edited grid without saving")
	return cmd
}

type edit struct {
	date   string
	status bulkattendance.Status
}

func parseEdits(raw []string) ([]edit, error) {
	out := make([]edit, 0, len(raw))
	for _, r := range raw {
		date, status, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, want date=status", r)
		}
		date = strings.TrimSpace(date)
		if _, err := time.Parse(bulkattendance.DateLayout, date); err != nil {
			return nil, fmt.Errorf("invalid date in --set %q", r)
		}
		s, ok := bulkattendance.ParseStatus(status)
		if !ok {
			return nil, fmt.Errorf("invalid status in --set %q", r)
		}
		out = append(out, edit{date: date, status: s})
	}
	return out, nil
}

// applyEdits: override dulu, lalu status per tanggal, terakhir bulk mark.
func applyEdits(out io.Writer, grid *bulkattendance.Grid, overrides, clears []string, edits []edit, bulk bulkattendance.Status) error {
	for _, d := range clears {
		if err := grid.ToggleOverride(d, false); err != nil {
			return fmt.Errorf("%s: %w", d, err)
		}
	}
	for _, d := range overrides {
		if err := grid.ToggleOverride(d, true); err != nil {
			return fmt.Errorf("%s: %w", d, err)
		}
	}
	for _, e := range edits {
		if err := grid.SetStatus(e.date, e.status); err != nil {
			return fmt.Errorf("%s: %w", e.date, err)
		}
	}
	if bulk != bulkattendance.StatusNone {
		changed, err := grid.BulkMark(bulk)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "bulk marked %d days as %s\n", changed, bulk)
	}
	return nil
}

func printGrid(out io.Writer, grid *bulkattendance.Grid) error {
	fmt.Fprintf(out, "%s - %s %d\n", grid.Employee.DisplayName(), grid.Month, grid.Year)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDAY\tSTATUS\tNOTE")
	for _, row := range grid.Rows() {
		status := string(row.Status)
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Key(), row.Date.Weekday().String()[:3], status, rowNote(row))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	c := grid.Counts()
	fmt.Fprintf(out, "Present %d  Absent %d  Half Day %d  LWP %d  Weekly Off %d  Holiday %d\n",
		c.Present, c.Absent, c.HalfDay, c.LWP, c.WeeklyOff, c.Holiday)
	return nil
}

func rowNote(row bulkattendance.Row) string {
	var notes []string
	if row.IsHoliday && row.HolidayDescription != "" {
		notes = append(notes, row.HolidayDescription)
	}
	if row.Original {
		notes = append(notes, "saved")
	}
	if row.IsFuture {
		notes = append(notes, "future")
	}
	return strings.Join(notes, ", ")
}
