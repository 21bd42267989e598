package salarystructure

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"saral-hr/internal/shared/dbutil"
	"saral-hr/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateStructure(ctx context.Context, structure *SalaryStructure) error
	UpdateStructure(ctx context.Context, structure *SalaryStructure) error
	ReplaceStructureRows(ctx context.Context, structureID string, rows []StructureRow) error
	FindStructure(ctx context.Context, companyIDs []string, id string) (*SalaryStructure, error)
	FindStructures(ctx context.Context, companyIDs []string) ([]SalaryStructure, error)
	DeleteStructure(ctx context.Context, companyIDs []string, id string) error
	FindComponents(ctx context.Context, companyID string, ids []string) ([]ComponentRef, error)

	FindLink(ctx context.Context, linkID string) (*LinkRef, error)
	CreateAssignment(ctx context.Context, assignment *Assignment) error
	UpdateAssignment(ctx context.Context, assignment *Assignment) error
	ReplaceAssignmentRows(ctx context.Context, assignmentID string, rows []AssignmentRow) error
	FindAssignment(ctx context.Context, companyIDs []string, id string) (*Assignment, error)
	FindAssignments(ctx context.Context, companyIDs []string, filter AssignmentFilter) ([]Assignment, error)
	DeleteAssignment(ctx context.Context, companyIDs []string, id string) error
	// LatestAssignment mengembalikan nil, nil jika belum ada assignment.
	LatestAssignment(ctx context.Context, linkID string, asOf time.Time) (*Assignment, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbutil.Conn(ctx, r.db, r.tx)
}

func (r *repository) CreateStructure(ctx context.Context, structure *SalaryStructure) error {
	return r.conn(ctx).Omit("Rows").Create(structure).Error
}

func (r *repository) UpdateStructure(ctx context.Context, structure *SalaryStructure) error {
	return r.conn(ctx).Omit("Rows").Save(structure).Error
}

func (r *repository) ReplaceStructureRows(ctx context.Context, structureID string, rows []StructureRow) error {
	if err := r.conn(ctx).Where("salary_structure_id = ?", structureID).Delete(&StructureRow{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.conn(ctx).Omit("Component").Create(&rows).Error
}

func (r *repository) FindStructure(ctx context.Context, companyIDs []string, id string) (*SalaryStructure, error) {
	var structure SalaryStructure
	err := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Preload("Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("section DESC, idx ASC")
		}).
		Preload("Rows.Component").
		First(&structure, "id = ?", id).Error
	return &structure, err
}

func (r *repository) FindStructures(ctx context.Context, companyIDs []string) ([]SalaryStructure, error) {
	var structures []SalaryStructure
	err := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Preload("Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("section DESC, idx ASC")
		}).
		Preload("Rows.Component").
		Order("name ASC").
		Find(&structures).Error
	return structures, err
}

func (r *repository) DeleteStructure(ctx context.Context, companyIDs []string, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Delete(&SalaryStructure{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindComponents(ctx context.Context, companyID string, ids []string) ([]ComponentRef, error) {
	var components []ComponentRef
	if len(ids) == 0 {
		return components, nil
	}
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Where("deleted_at IS NULL").
		Find(&components).Error
	return components, err
}

func (r *repository) FindLink(ctx context.Context, linkID string) (*LinkRef, error) {
	var link LinkRef
	err := r.conn(ctx).
		Where("deleted_at IS NULL").
		First(&link, "id = ?", linkID).Error
	return &link, err
}

func (r *repository) CreateAssignment(ctx context.Context, assignment *Assignment) error {
	return r.conn(ctx).Omit("Rows", "Link", "Structure").Create(assignment).Error
}

func (r *repository) UpdateAssignment(ctx context.Context, assignment *Assignment) error {
	return r.conn(ctx).Omit("Rows", "Link", "Structure").Save(assignment).Error
}

func (r *repository) ReplaceAssignmentRows(ctx context.Context, assignmentID string, rows []AssignmentRow) error {
	if err := r.conn(ctx).Where("assignment_id = ?", assignmentID).Delete(&AssignmentRow{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&rows).Error
}

func (r *repository) assignmentQuery(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Preload("Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("section DESC, idx ASC")
		}).
		Preload("Link")
}

func (r *repository) FindAssignment(ctx context.Context, companyIDs []string, id string) (*Assignment, error) {
	var assignment Assignment
	err := r.assignmentQuery(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		First(&assignment, "id = ?", id).Error
	return &assignment, err
}

func (r *repository) FindAssignments(ctx context.Context, companyIDs []string, filter AssignmentFilter) ([]Assignment, error) {
	var assignments []Assignment
	q := r.assignmentQuery(ctx).Scopes(tenant.ScopeCompanies("company_id", companyIDs))
	if filter.Employee != "" {
		q = q.Where("company_link_id = ?", filter.Employee)
	}
	if filter.Structure != "" {
		q = q.Where("salary_structure_id = ?", filter.Structure)
	}
	err := q.Order("from_date DESC").Find(&assignments).Error
	return assignments, err
}

func (r *repository) DeleteAssignment(ctx context.Context, companyIDs []string, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Delete(&Assignment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) LatestAssignment(ctx context.Context, linkID string, asOf time.Time) (*Assignment, error) {
	var assignment Assignment
	err := r.assignmentQuery(ctx).
		Preload("Structure.Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("section DESC, idx ASC")
		}).
		Preload("Structure.Rows.Component").
		Where("company_link_id = ?", linkID).
		Where("from_date <= ?", asOf).
		Order("from_date DESC").
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
