package report

import (
	"math"
	"strings"
	"time"

	"course_activity_report/internal/domain/activity"
)

const (
	isoDateLayout    = "2006-01-02"
	reportDateLayout = "01/02/2006"
)

// FormatDate turns an ISO-8601 date or date-time into MM/DD/YYYY. Empty or
// unparseable input yields "".
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if i := strings.IndexAny(value, "T "); i >= 0 {
		value = value[:i]
	}

	t, err := time.Parse(isoDateLayout, value)
	if err != nil {
		return ""
	}
	return t.Format(reportDateLayout)
}

// MinutesToHours converts minutes to hours rounded to two decimals, halves
// rounding away from zero. Nil and zero give 0.
func MinutesToHours(minutes *float64) float64 {
	if minutes == nil || *minutes == 0 {
		return 0
	}
	return math.Round(*minutes/60*100) / 100
}

// BuildRow maps one activity record onto the report columns.
func BuildRow(rec activity.Record, today time.Time) Row {
	return Row{
		UserEmail:      rec.UserEmail,
		ReportDate:     today.Format(reportDateLayout),
		Category:       rec.CourseCategory,
		Subcategory:    rec.CourseCategory,
		CourseTitle:    rec.CourseTitle,
		EnrollDate:     FormatDate(rec.CourseEnrollDate),
		CompletionDate: FormatDate(rec.CourseFirstCompletionDate),
		Status:         StatusOnlineComplete,
		VideoHours:     MinutesToHours(rec.VideoConsumedMinutes),
	}
}

// BuildRows maps a result set in source order.
func BuildRows(rs *activity.ResultSet, today time.Time) []Row {
	rows := make([]Row, 0, rs.Len())
	if rs == nil {
		return rows
	}
	for _, rec := range rs.Records {
		rows = append(rows, BuildRow(rec, today))
	}
	return rows
}
