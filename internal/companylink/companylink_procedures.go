package companylink

import (
	"context"

	"saral-hr/internal/rpc"
)

const (
	MethodActiveEmployees = "employee.get_active_employees"
	MethodSearchEmployees = "employee.search_employees"
)

type activeEmployeesArgs struct {
	Company string `json:"company"`
}

func RegisterProcedures(reg *rpc.Registry, service Service) {
	reg.Register(MethodActiveEmployees, "employee", "read", rpc.Typed(
		func(ctx context.Context, call rpc.Call, args activeEmployeesArgs) ([]EmployeeOption, error) {
			return service.ActiveEmployees(ctx, call.PermittedCompanies, args.Company)
		},
	))

	reg.Register(MethodSearchEmployees, "employee", "read", rpc.Typed(
		func(ctx context.Context, call rpc.Call, args SearchArgs) ([]EmployeeOption, error) {
			return service.Search(ctx, call.PermittedCompanies, args.Query)
		},
	))
}
