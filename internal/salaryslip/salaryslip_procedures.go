package salaryslip

import (
	"context"

	"saral-hr/internal/rpc"
)

const (
	MethodEligibleEmployees = "salary_slip.get_eligible_employees"
	MethodBulkGenerate      = "salary_slip.bulk_generate"
)

func RegisterProcedures(reg *rpc.Registry, service Service) {
	reg.Register(MethodEligibleEmployees, "salary", "read", rpc.Typed(
		func(ctx context.Context, call rpc.Call, args EligibilityArgs) (EligibilityResult, error) {
			if args.Company == "" {
				args.Company = call.CompanyID
			}
			return service.Eligibility(ctx, call.PermittedCompanies, args)
		},
	))

	reg.Register(MethodBulkGenerate, "salary", "create", rpc.Typed(
		func(ctx context.Context, call rpc.Call, args BulkGenerateArgs) (BulkGenerateResult, error) {
			if args.Company == "" {
				args.Company = call.CompanyID
			}
			return service.BulkGenerate(ctx, call.PermittedCompanies, args)
		},
	))
}
