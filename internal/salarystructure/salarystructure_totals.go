package salarystructure

import "github.com/shopspring/decimal"

// ComputeTotals menghitung ringkasan assignment. Deduction yang ditandai
// employer contribution tidak mengurangi take home, tetapi menambah CTC.
func ComputeTotals(rows []AssignmentRow) Totals {
	t := Totals{
		TotalEarnings:             decimal.Zero,
		TotalDeductions:           decimal.Zero,
		TotalEmployerContribution: decimal.Zero,
	}
	for _, row := range rows {
		switch {
		case row.Section == SectionEarnings:
			t.TotalEarnings = t.TotalEarnings.Add(row.Amount)
		case row.EmployerContribution:
			t.TotalEmployerContribution = t.TotalEmployerContribution.Add(row.Amount)
		default:
			t.TotalDeductions = t.TotalDeductions.Add(row.Amount)
		}
	}
	t.GrossPay = t.TotalEarnings
	t.NetInHand = t.TotalEarnings.Sub(t.TotalDeductions)
	t.CTC = t.TotalEarnings.Add(t.TotalEmployerContribution)
	return t
}

func applyTotals(a *Assignment) {
	t := ComputeTotals(a.Rows)
	a.TotalEarnings = t.TotalEarnings
	a.TotalDeductions = t.TotalDeductions
	a.TotalEmployerContribution = t.TotalEmployerContribution
	a.GrossPay = t.GrossPay
	a.NetInHand = t.NetInHand
	a.CTC = t.CTC
}
