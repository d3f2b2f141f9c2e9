package views

import (
	"math"
	"strconv"
	"strings"

	"github.com/it407/it-assets/pkg/table"
)

const AttendanceView = "attendance"

var attendanceColumns = []string{
	"empid", "employee_fname", "employee_lname", "gender", "log_date", "user_type",
	"first_in_time", "last_out_time", "work_hours", "work_hours_status",
	"day_status", "total_in_out", "leave_status",
}

// WorkHoursStatus buckets a work_hours cell: Full from 8 hours, Partial from
// 4, Low below that and NA when the cell is not a number.
func WorkHoursStatus(value string) string {
	hours, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(hours) {
		return "NA"
	}
	switch {
	case hours >= 8:
		return "Full"
	case hours >= 4:
		return "Partial"
	default:
		return "Low"
	}
}

func Attendance(records []table.Row) View {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		row := r.Clone()
		row["work_hours_status"] = WorkHoursStatus(r["work_hours"])
		rows = append(rows, row)
	}

	return View{Name: AttendanceView, Columns: attendanceColumns, Rows: rows}
}
