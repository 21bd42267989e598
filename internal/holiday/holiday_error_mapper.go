package holiday

import (
	holidayerrors "saral-hr/internal/holiday/errors"
	"saral-hr/internal/shared/dbutil"
)

var uniqueConstraints = map[string]error{
	"uq_holiday_list_date": holidayerrors.ErrDuplicateHoliday,
}

func mapRepositoryError(err error) error {
	return dbutil.MapError(err, holidayerrors.ErrHolidayListNotFound, uniqueConstraints)
}
