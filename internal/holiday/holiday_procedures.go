package holiday

import (
	"context"
	"strings"

	holidayerrors "saral-hr/internal/holiday/errors"
	"saral-hr/internal/rpc"
	"saral-hr/internal/shared/period"
	"saral-hr/internal/tenant"
)

const MethodHolidaysBetween = "holiday.get_holidays_between_dates"

func RegisterProcedures(reg *rpc.Registry, service Service) {
	reg.Register(MethodHolidaysBetween, "holiday", "read", rpc.Typed(
		func(ctx context.Context, call rpc.Call, args HolidaysBetweenArgs) ([]HolidayResponse, error) {
			company := strings.TrimSpace(args.Company)
			if company != "" && !tenant.Allows(call.PermittedCompanies, company) {
				return nil, holidayerrors.ErrHolidayListForbidden
			}
			from, err := period.ParseDate(args.StartDate)
			if err != nil {
				return nil, holidayerrors.ErrInvalidDate
			}
			to, err := period.ParseDate(args.EndDate)
			if err != nil {
				return nil, holidayerrors.ErrInvalidDate
			}
			return service.HolidaysBetween(ctx, company, from, to)
		},
	))
}
