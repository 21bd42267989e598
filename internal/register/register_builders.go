package register

import (
	"strings"
	"time"
	"unicode"

	"saral-hr/internal/shared/period"

	"github.com/shopspring/decimal"
)

const (
	displayLayout         = "02-01-2006"
	retentionPeriodMonths = 36
	sectionEarnings       = "earnings"
	sectionDeductions     = "deductions"
)

type builder func(records []SlipRecord, lines map[string][]ComponentLine, args Args) Table

var builders = map[string]builder{
	KindPF:             buildPF,
	KindESI:            buildESI,
	KindLWF:            buildLWF,
	KindProfessionalTx: buildProfessionalTax,
	KindRetention:      buildRetention,
	KindBankAdvice:     buildBankAdvice,
	KindSalarySummary:  buildSalarySummary,
	KindVariablePay:    buildVariablePay,
	KindEducation:      buildEducationAllowance,
	KindChecklist:      buildTransactionChecklist,
}

func Kinds() []string {
	return []string{KindPF, KindESI, KindLWF, KindProfessionalTx, KindRetention, KindBankAdvice, KindSalarySummary, KindVariablePay, KindEducation, KindChecklist}
}

// sum menjumlahkan baris section yang lolos match. employer nil berarti
// employee dan employer contribution sama-sama dihitung.
func sum(lines []ComponentLine, section string, employer *bool, match func(name string) bool) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Section != section || !match(strings.ToLower(l.ComponentName)) {
			continue
		}
		if employer != nil && l.EmployerContribution != *employer {
			continue
		}
		total = total.Add(l.Amount)
	}
	return total
}

func contains(sub string) func(string) bool {
	return func(name string) bool { return strings.Contains(name, sub) }
}

func hasWord(name, word string) bool {
	for _, f := range strings.FieldsFunc(name, func(r rune) bool { return !unicode.IsLetter(r) }) {
		if f == word {
			return true
		}
	}
	return false
}

func isPF(name string) bool {
	if strings.Contains(name, "voluntary") {
		return false
	}
	return strings.Contains(name, "provident") || hasWord(name, "pf") || hasWord(name, "epf")
}

var (
	employeeShare = ptr(false)
	employerShare = ptr(true)
)

func ptr(v bool) *bool { return &v }

func money(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

func date(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(displayLayout)
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func buildPF(records []SlipRecord, lines map[string][]ComponentLine, _ Args) Table {
	t := Table{
		Name: "Provident Fund Register",
		Columns: []Column{
			{Key: "pf_no", Label: "PF No."},
			{Key: "uan_no", Label: "UAN No."},
			{Key: "employee_id", Label: "Employee ID"},
			{Key: "employee_name", Label: "Employee Name"},
			{Key: "days", Label: "Payment Days", Numeric: true},
			{Key: "absent", Label: "Absent", Numeric: true},
			{Key: "gross", Label: "Gross Salary", Numeric: true},
			{Key: "employee_pf", Label: "Employee PF", Numeric: true},
			{Key: "employer_pf", Label: "Employer PF", Numeric: true},
			{Key: "vol_pf", Label: "Vol. PF", Numeric: true},
			{Key: "total_amount", Label: "Total Amount", Numeric: true},
			{Key: "date_of_joining", Label: "Date of Joining"},
			{Key: "date_of_birth", Label: "Date of Birth"},
		},
		Rows: []Row{},
	}
	var gross, emp, er, vol, total decimal.Decimal
	for _, r := range records {
		l := lines[r.SlipID]
		e := sum(l, sectionDeductions, employeeShare, isPF)
		c := sum(l, sectionDeductions, employerShare, isPF)
		v := sum(l, sectionDeductions, nil, contains("voluntary"))
		rowTotal := e.Add(c).Add(v)
		if rowTotal.IsZero() {
			continue
		}
		t.Rows = append(t.Rows, Row{
			"pf_no":           orDash(r.PFNumber),
			"uan_no":          orDash(r.UANNumber),
			"employee_id":     r.EmployeeCode,
			"employee_name":   r.EmployeeName,
			"days":            r.PaymentDays,
			"absent":          r.AbsentDays,
			"gross":           money(r.TotalEarnings),
			"employee_pf":     money(e),
			"employer_pf":     money(c),
			"vol_pf":          money(v),
			"total_amount":    money(rowTotal),
			"date_of_joining": date(r.DateOfJoining),
			"date_of_birth":   date(r.DateOfBirth),
		})
		gross, emp, er, vol, total = gross.Add(r.TotalEarnings), emp.Add(e), er.Add(c), vol.Add(v), total.Add(rowTotal)
	}
	t.Total = Row{
		"employee_name": "Total",
		"gross":         money(gross),
		"employee_pf":   money(emp),
		"employer_pf":   money(er),
		"vol_pf":        money(vol),
		"total_amount":  money(total),
	}
	return t
}

// ESI menggabungkan kontribusi employee dan employer; employee tanpa ESI dilewati.
func buildESI(records []SlipRecord, lines map[string][]ComponentLine, _ Args) Table {
	t := Table{
		Name: "ESI Register",
		Columns: []Column{
			{Key: "esic_number", Label: "ESIC No."},
			{Key: "employee_id", Label: "Employee ID"},
			{Key: "employee_name", Label: "Employee Name"},
			{Key: "days_paid", Label: "Days Paid", Numeric: true},
			{Key: "gross_salary", Label: "Gross Salary", Numeric: true},
			{Key: "total_esi", Label: "ESI Contribution", Numeric: true},
			{Key: "date_of_joining", Label: "Join Date"},
			{Key: "date_of_birth", Label: "Birth Date"},
		},
		Rows: []Row{},
	}
	var gross, total decimal.Decimal
	for _, r := range records {
		esi := sum(lines[r.SlipID], sectionDeductions, nil, contains("esic"))
		if !esi.IsPositive() {
			continue
		}
		t.Rows = append(t.Rows, Row{
			"esic_number":     orDash(r.ESICNumber),
			"employee_id":     r.EmployeeCode,
			"employee_name":   r.EmployeeName,
			"days_paid":       r.PaymentDays,
			"gross_salary":    money(r.TotalEarnings),
			"total_esi":       money(esi),
			"date_of_joining": date(r.DateOfJoining),
			"date_of_birth":   date(r.DateOfBirth),
		})
		gross, total = gross.Add(r.TotalEarnings), total.Add(esi)
	}
	t.Total = Row{"employee_name": "Total", "gross_salary": money(gross), "total_esi": money(total)}
	return t
}

func buildLWF(records []SlipRecord, lines map[string][]ComponentLine, _ Args) Table {
	t := Table{
		Name: "Labour Welfare Fund Register",
		Columns: []Column{
			{Key: "sr_no", Label: "Sr. No.", Numeric: true},
			{Key: "employee_id", Label: "Employee ID"},
			{Key: "employee_name", Label: "Employee Name"},
			{Key: "aadhaar_no", Label: "Aadhar No"},
			{Key: "net_salary", Label: "Net Salary", Numeric: true},
			{Key: "employee_lwf", Label: "Employee LWF", Numeric: true},
			{Key: "employer_lwf", Label: "Employer LWF", Numeric: true},
			{Key: "lwf_amount", Label: "LWF Amount", Numeric: true},
		},
		Rows: []Row{},
	}
	var net, emp, er, total decimal.Decimal
	for _, r := range records {
		l := lines[r.SlipID]
		e := sum(l, sectionDeductions, employeeShare, contains("welfare"))
		c := sum(l, sectionDeductions, employerShare, contains("welfare"))
		amount := e.Add(c)
		if amount.IsZero() {
			continue
		}
		aadhaar := ""
		if r.AadhaarNumber != nil {
			aadhaar = *r.AadhaarNumber
		}
		t.Rows = append(t.Rows, Row{
			"sr_no":         len(t.Rows) + 1,
			"employee_id":   r.EmployeeCode,
			"employee_name": r.EmployeeName,
			"aadhaar_no":    orDash(aadhaar),
			"net_salary":    money(r.NetSalary),
			"employee_lwf":  money(e),
			"employer_lwf":  money(c),
			"lwf_amount":    money(amount),
		})
		net, emp, er, total = net.Add(r.NetSalary), emp.Add(e), er.Add(c), total.Add(amount)
	}
	t.Total = Row{
		"employee_name": "Total",
		"net_salary":    money(net),
		"employee_lwf":  money(emp),
		"employer_lwf":  money(er),
		"lwf_amount":    money(total),
	}
	return t
}

// Professional tax diambil dari baris slip apa adanya, tanpa slab.
func buildProfessionalTax(records []SlipRecord, lines map[string][]ComponentLine, _ Args) Table {
	t := Table{
		Name: "Professional Tax Register",
		Columns: []Column{
			{Key: "employee_id", Label: "Employee ID"},
			{Key: "employee_name", Label: "Employee Name"},
			{Key: "gross", Label: "Total Earnings", Numeric: true},
			{Key: "pt_amount", Label: "PT Amount (Rs.)", Numeric: true},
		},
		Rows: []Row{},
	}
	var gross, total decimal.Decimal
	for _, r := range records {
		pt := sum(lines[r.SlipID], sectionDeductions, employeeShare, contains("professional tax"))
		if pt.IsZero() {
			continue
		}
		t.Rows = append(t.Rows, Row{
			"employee_id":   r.EmployeeCode,
			"employee_name": r.EmployeeName,
			"gross":         money(r.TotalEarnings),
			"pt_amount":     money(pt),
		})
		gross, total = gross.Add(r.TotalEarnings), total.Add(pt)
	}
	t.Total = Row{"employee_name": "Total", "gross": money(gross), "pt_amount": money(total)}
	return t
}

// Retention deposit dipotong sampai 36 bulan setelah tanggal bergabung.
func buildRetention(records []SlipRecord, lines map[string][]ComponentLine, _ Args) Table {
	t := Table{
		Name: "Retention Deposit Register",
		Columns: []Column{
			{Key: "sr_no", Label: "Sr. No.", Numeric: true},
			{Key: "employee_id", Label: "Employee ID"},
			{Key: "employee_name", Label: "Employee Name"},
			{Key: "date_of_joining", Label: "Date of Joining"},
			{Key: "ded_upto", Label: "Deduction Upto (3 Years)"},
			{Key: "retention_amount", Label: "Retention Deposit", Numeric: true},
		},
		Rows: []Row{},
	}
	total := decimal.Zero
	for _, r := range records {
		amount := sum(lines[r.SlipID], sectionDeductions, nil, contains("retention"))
		if amount.IsZero() {
			continue
		}
		upto := "-"
		if r.DateOfJoining != nil {
			upto = period.AddMonths(*r.DateOfJoining, retentionPeriodMonths).Format(displayLayout)
		}
		t.Rows = append(t.Rows, Row{
			"sr_no":            len(t.Rows) + 1,
			"employee_id":      r.EmployeeCode,
			"employee_name":    r.EmployeeName,
			"date_of_joining":  date(r.DateOfJoining),
			"ded_upto":         upto,
			"retention_amount": money(amount),
		})
		total = total.Add(amount)
	}
	t.Total = Row{"employee_name": "Total", "retention_amount": money(total)}
	return t
}

// Bank advice membandingkan bank employee dengan bank utama company
// (case-insensitive). BankHome hanya employee di bank yang sama,
// BankDifferent sisanya.
func buildBankAdvice(records []SlipRecord, _ map[string][]ComponentLine, args Args) Table {
	t := Table{
		Name: "Bank Advice",
		Columns: []Column{
			{Key: "employee_id", Label: "Employee ID"},
			{Key: "employee_name", Label: "Employee Name"},
			{Key: "ifsc_code", Label: "IFSC Code"},
			{Key: "account_number", Label: "Account Number"},
			{Key: "net_salary", Label: "Net Salary", Numeric: true},
			{Key: "bank_name", Label: "Bank Name"},
		},
		Rows: []Row{},
	}
	total := decimal.Zero
	for _, r := range records {
		emp := strings.ToLower(strings.TrimSpace(r.BankName))
		home := strings.ToLower(strings.TrimSpace(r.CompanyBankName))
		switch args.BankType {
		case BankHome:
			if home == "" || emp != home {
				continue
			}
		case BankDifferent:
			if home != "" && emp == home {
				continue
			}
		}
		t.Rows = append(t.Rows, Row{
			"employee_id":    r.EmployeeCode,
			"employee_name":  r.EmployeeName,
			"ifsc_code":      orDash(r.IFSCCode),
			"account_number": orDash(r.BankAccountNo),
			"net_salary":     money(r.NetSalary),
			"bank_name":      orDash(r.BankName),
		})
		total = total.Add(r.NetSalary)
	}
	t.Total = Row{"employee_name": "Total", "net_salary": money(total)}
	return t
}

type componentTotal struct {
	name   string
	amount decimal.Decimal
}

// Salary summary menjumlahkan per komponen, earnings dan deductions
// berdampingan. Employer contribution tidak ikut.
func buildSalarySummary(records []SlipRecord, lines map[string][]ComponentLine, _ Args) Table {
	t := Table{
		Name: "Salary Summary",
		Columns: []Column{
			{Key: "description", Label: "Earnings - Description"},
			{Key: "amount", Label: "Earnings - Amount", Numeric: true},
			{Key: "ded_description", Label: "Deductions - Description"},
			{Key: "ded_amount", Label: "Deductions - Amount", Numeric: true},
		},
		Rows: []Row{},
	}

	var earnings, deductions []componentTotal
	add := func(list []componentTotal, l ComponentLine) []componentTotal {
		for i := range list {
			if list[i].name == l.ComponentName {
				list[i].amount = list[i].amount.Add(l.Amount)
				return list
			}
		}
		return append(list, componentTotal{name: l.ComponentName, amount: l.Amount})
	}
	for _, r := range records {
		for _, l := range lines[r.SlipID] {
			switch {
			case l.Section == sectionEarnings:
				earnings = add(earnings, l)
			case !l.EmployerContribution:
				deductions = add(deductions, l)
			}
		}
	}

	totalEarnings, totalDeductions := decimal.Zero, decimal.Zero
	for i := 0; i < max(len(earnings), len(deductions)); i++ {
		row := Row{}
		if i < len(earnings) {
			row["description"] = earnings[i].name
			row["amount"] = money(earnings[i].amount)
			totalEarnings = totalEarnings.Add(earnings[i].amount)
		}
		if i < len(deductions) {
			row["ded_description"] = deductions[i].name
			row["ded_amount"] = money(deductions[i].amount)
			totalDeductions = totalDeductions.Add(deductions[i].amount)
		}
		t.Rows = append(t.Rows, row)
	}
	t.Total = Row{
		"description":     "Total Earnings",
		"amount":          money(totalEarnings),
		"ded_description": "Total Deductions",
		"ded_amount":      money(totalDeductions),
	}
	return t
}

// Variable pay register hanya memuat employee yang assignment-nya punya
// komponen variable pay. Persentase diambil dari slip, nominal dari baris earnings slip.
func buildVariablePay(records []SlipRecord, lines map[string][]ComponentLine, _ Args) Table {
	t := Table{
		Name: "Variable Pay Register",
		Columns: []Column{
			{Key: "sr_no", Label: "Sr. No.", Numeric: true},
			{Key: "employee_id", Label: "Employee ID"},
			{Key: "employee_name", Label: "Employee Name"},
			{Key: "division", Label: "Division"},
			{Key: "monthly_variable_pay", Label: "Monthly Variable Pay", Numeric: true},
			{Key: "variable_pay_percentage", Label: "Variable Pay %", Numeric: true},
			{Key: "variable_pay_amount", Label: "Variable Pay Amount", Numeric: true},
		},
		Rows: []Row{},
	}
	var monthly, total decimal.Decimal
	for _, r := range records {
		if !r.MonthlyVariablePay.IsPositive() {
			continue
		}
		paid := sum(lines[r.SlipID], sectionEarnings, nil, contains("variable"))
		t.Rows = append(t.Rows, Row{
			"sr_no":                   len(t.Rows) + 1,
			"employee_id":             r.EmployeeCode,
			"employee_name":           r.EmployeeName,
			"division":                r.Division,
			"monthly_variable_pay":    money(r.MonthlyVariablePay),
			"variable_pay_percentage": money(r.VariablePayPercentage),
			"variable_pay_amount":     money(paid),
		})
		monthly, total = monthly.Add(r.MonthlyVariablePay), total.Add(paid)
	}
	t.Total = Row{
		"employee_name":        "Total",
		"monthly_variable_pay": money(monthly),
		"variable_pay_amount":  money(total),
	}
	return t
}

func buildEducationAllowance(records []SlipRecord, lines map[string][]ComponentLine, _ Args) Table {
	t := Table{
		Name: "Educational Allowance Register",
		Columns: []Column{
			{Key: "employee_id", Label: "Employee ID"},
			{Key: "employee_name", Label: "Employee Name"},
			{Key: "educational_allowance", Label: "Educational Allowance", Numeric: true},
		},
		Rows: []Row{},
	}
	total := decimal.Zero
	for _, r := range records {
		amount := sum(lines[r.SlipID], sectionEarnings, nil, contains("education"))
		if !amount.IsPositive() {
			continue
		}
		t.Rows = append(t.Rows, Row{
			"employee_id":           r.EmployeeCode,
			"employee_name":         r.EmployeeName,
			"educational_allowance": money(amount),
		})
		total = total.Add(amount)
	}
	t.Total = Row{"employee_name": "Total", "educational_allowance": money(total)}
	return t
}

// Transaction checklist: satu baris per slip, kolom komponen mengikuti urutan
// pertama kali muncul (earnings dulu, lalu deductions). Employer contribution
// tidak ikut karena bukan potongan gaji.
func buildTransactionChecklist(records []SlipRecord, lines map[string][]ComponentLine, _ Args) Table {
	type component struct {
		key   string
		name  string
		total decimal.Decimal
	}
	var earnings, deductions []*component
	keys := make(map[string]*component)
	lookup := func(section, name string) *component {
		key := section + ":" + name
		if c, ok := keys[key]; ok {
			return c
		}
		c := &component{key: key, name: name, total: decimal.Zero}
		keys[key] = c
		if section == sectionEarnings {
			earnings = append(earnings, c)
		} else {
			deductions = append(deductions, c)
		}
		return c
	}

	rows := make([]Row, 0, len(records))
	var totalEarnings, totalDeductions, totalNet decimal.Decimal
	for _, r := range records {
		row := Row{
			"employee_id":             r.EmployeeCode,
			"employee_name":           r.EmployeeName,
			"payment_days":            r.PaymentDays,
			"lwp_days":                r.LWPDays,
			"variable_pay_percentage": money(r.VariablePayPercentage),
			"total_earnings":          money(r.TotalEarnings),
			"total_deductions":        money(r.TotalDeductions),
			"net_salary":              money(r.NetSalary),
		}
		for _, l := range lines[r.SlipID] {
			if l.Section != sectionEarnings && l.EmployerContribution {
				continue
			}
			c := lookup(l.Section, l.ComponentName)
			prev, _ := row[c.key].(decimal.Decimal)
			row[c.key] = money(prev.Add(l.Amount))
			c.total = c.total.Add(l.Amount)
		}
		rows = append(rows, row)
		totalEarnings = totalEarnings.Add(r.TotalEarnings)
		totalDeductions = totalDeductions.Add(r.TotalDeductions)
		totalNet = totalNet.Add(r.NetSalary)
	}

	t := Table{
		Name: "Transaction Checklist",
		Columns: []Column{
			{Key: "employee_id", Label: "Employee ID"},
			{Key: "employee_name", Label: "Employee Name"},
			{Key: "payment_days", Label: "Payment Days", Numeric: true},
			{Key: "lwp_days", Label: "LWP", Numeric: true},
			{Key: "variable_pay_percentage", Label: "VAR %", Numeric: true},
		},
		Rows: rows,
		Total: Row{
			"employee_name":    "Total",
			"total_earnings":   money(totalEarnings),
			"total_deductions": money(totalDeductions),
			"net_salary":       money(totalNet),
		},
	}
	for _, c := range append(earnings, deductions...) {
		t.Columns = append(t.Columns, Column{Key: c.key, Label: c.name, Numeric: true})
		t.Total[c.key] = money(c.total)
	}
	t.Columns = append(t.Columns,
		Column{Key: "total_earnings", Label: "Total Earnings", Numeric: true},
		Column{Key: "total_deductions", Label: "Total Deductions", Numeric: true},
		Column{Key: "net_salary", Label: "Net Salary", Numeric: true},
	)
	return t
}
