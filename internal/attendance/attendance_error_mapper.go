package attendance

import (
	attendanceerrors "saral-hr/internal/attendance/errors"
	"saral-hr/internal/shared/dbutil"
)

var uniqueConstraints = map[string]error{
	"uq_attendance_link_date": attendanceerrors.ErrDuplicateAttendance,
}

func mapRepositoryError(err error) error {
	return dbutil.MapError(err, attendanceerrors.ErrAttendanceNotFound, uniqueConstraints)
}
