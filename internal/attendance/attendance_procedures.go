package attendance

import (
	"context"

	attendanceerrors "saral-hr/internal/attendance/errors"
	"saral-hr/internal/rpc"
	"saral-hr/internal/shared/period"
)

const (
	MethodBetweenDates = "attendance.get_attendance_between_dates"
	MethodSaveBatch    = "attendance.save_attendance_batch"
)

func RegisterProcedures(reg *rpc.Registry, service Service) {
	reg.Register(MethodBetweenDates, "attendance", "read", rpc.Typed(
		func(ctx context.Context, call rpc.Call, args BetweenDatesArgs) (map[string]string, error) {
			from, err := period.ParseDate(args.StartDate)
			if err != nil {
				return nil, attendanceerrors.ErrInvalidDate
			}
			to, err := period.ParseDate(args.EndDate)
			if err != nil {
				return nil, attendanceerrors.ErrInvalidDate
			}
			return service.GetBetweenDates(ctx, call.PermittedCompanies, args.Employee, from, to)
		},
	))

	// Kesalahan infrastruktur tetap dikembalikan sebagai BatchResult supaya
	// klien grid cukup membaca satu bentuk respons.
	reg.Register(MethodSaveBatch, "attendance", "create", rpc.Typed(
		func(ctx context.Context, call rpc.Call, args SaveBatchArgs) (BatchResult, error) {
			res, err := service.SaveBatch(ctx, call.PermittedCompanies, args.AttendanceData)
			if err != nil {
				return BatchResult{Success: false, Error: messageOf(err)}, nil
			}
			return res, nil
		},
	))
}
