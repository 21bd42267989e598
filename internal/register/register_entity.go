package register

import (
	"time"

	"github.com/shopspring/decimal"
)

// SlipRecord adalah satu salary slip submitted beserta data employee yang
// dibutuhkan register.
type SlipRecord struct {
	SlipID          string
	CompanyID       string
	EmployeeCode    string
	EmployeeName    string
	DateOfJoining   *time.Time
	DateOfBirth     *time.Time
	PaymentDays     decimal.Decimal
	AbsentDays      int
	LWPDays         int `gorm:"column:lwp_days"`
	TotalEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	AadhaarNumber   *string
	PFNumber        string `gorm:"column:pf_number"`
	UANNumber       string `gorm:"column:uan_number"`
	ESICNumber      string `gorm:"column:esic_number"`
	BankName        string
	BankAccountNo   string
	IFSCCode        string `gorm:"column:ifsc_code"`
	CompanyBankName string
	Division        string
	// VariablePayPercentage disalin ke slip saat generate dari variable pay assignment.
	VariablePayPercentage decimal.Decimal
	// MonthlyVariablePay adalah nominal variable pay di salary structure assignment slip.
	MonthlyVariablePay decimal.Decimal
}

type ComponentLine struct {
	SlipID               string
	Section              string
	ComponentName        string
	EmployerContribution bool
	Amount               decimal.Decimal
}
