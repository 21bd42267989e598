package register

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	SubmittedSlips(ctx context.Context, companyID, categoryID string, start time.Time) ([]SlipRecord, error)
	Lines(ctx context.Context, slipIDs []string) ([]ComponentLine, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SubmittedSlips(ctx context.Context, companyID, categoryID string, start time.Time) ([]SlipRecord, error) {
	var out []SlipRecord
	q := r.db.WithContext(ctx).
		Table("salary_slips AS ss").
		Select(`ss.id AS slip_id,
			ss.company_id,
			cl.name AS employee_code,
			cl.full_name AS employee_name,
			cl.date_of_joining,
			e.date_of_birth,
			ss.payment_days,
			ss.absent_days,
			ss.lwp_days,
			ss.total_earnings,
			ss.total_deductions,
			ss.net_salary,
			e.aadhaar_number,
			COALESCE(e.pf_number, '') AS pf_number,
			COALESCE(e.uan_number, '') AS uan_number,
			COALESCE(e.esic_number, '') AS esic_number,
			COALESCE(e.bank_name, '') AS bank_name,
			COALESCE(e.bank_account_no, '') AS bank_account_no,
			COALESCE(e.ifsc_code, '') AS ifsc_code,
			COALESCE(c.bank_name, '') AS company_bank_name,
			COALESCE(cl.division, '') AS division,
			ss.variable_pay_percentage,
			COALESCE((
				SELECT SUM(ar.amount)
				FROM salary_structure_assignment_rows ar
				WHERE ar.assignment_id = ss.assignment_id
					AND ar.section = 'earnings'
					AND LOWER(ar.component_name) LIKE '%variable%'
			), 0) AS monthly_variable_pay`).
		Joins("JOIN company_links cl ON cl.id = ss.company_link_id").
		Joins("LEFT JOIN employees e ON e.id = cl.employee_id").
		Joins("JOIN companies c ON c.id = ss.company_id").
		Where("ss.company_id = ? AND ss.start_date = ? AND ss.status = ?", companyID, start, "Submitted")
	if categoryID != "" {
		q = q.Where("cl.category_id = ?", categoryID)
	}
	err := q.Order("cl.full_name ASC").Scan(&out).Error
	return out, err
}

func (r *repository) Lines(ctx context.Context, slipIDs []string) ([]ComponentLine, error) {
	var out []ComponentLine
	if len(slipIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Table("salary_slip_rows").
		Select("salary_slip_id AS slip_id, section, component_name, employer_contribution, amount").
		Where("salary_slip_id IN ?", slipIDs).
		Order("section DESC, idx ASC").
		Scan(&out).Error
	return out, err
}
