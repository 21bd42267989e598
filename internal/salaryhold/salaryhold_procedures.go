package salaryhold

import (
	"context"

	"saral-hr/internal/rpc"
)

const (
	MethodHoldStatus = "salary_hold.get_hold_status"
	MethodIsOnHold   = "salary_hold.is_employee_on_hold"
	MethodSlips      = "salary_hold.get_salary_slips_for_employee"
)

func RegisterProcedures(reg *rpc.Registry, service Service) {
	reg.Register(MethodHoldStatus, "salary", "read", rpc.Typed(
		func(ctx context.Context, call rpc.Call, args HoldStatusArgs) (HoldStatus, error) {
			return service.HoldStatus(ctx, call.PermittedCompanies, args.Employee)
		},
	))

	reg.Register(MethodIsOnHold, "salary", "read", rpc.Typed(
		func(ctx context.Context, call rpc.Call, args HoldStatusArgs) (bool, error) {
			status, err := service.HoldStatus(ctx, call.PermittedCompanies, args.Employee)
			if err != nil {
				return false, err
			}
			return status.ID != "", nil
		},
	))

	reg.Register(MethodSlips, "salary", "read", rpc.Typed(
		func(ctx context.Context, call rpc.Call, args SlipsArgs) ([]SlipOption, error) {
			return service.SlipsForEmployee(ctx, call.PermittedCompanies, args)
		},
	))
}
