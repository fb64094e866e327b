// internal/domain/report/row.go
package report

// StatusOnlineComplete is written into every row's status column.
const StatusOnlineComplete = "Online_Complete"

// FirstDataRow is the 1-based sheet row receiving the first record; rows
// above it belong to the template header.
const FirstDataRow = 6

// Row is one populated line of the report. Template columns not listed in
// Cells (A, D, K and anything past L) are never written.
type Row struct {
	UserEmail      string
	ReportDate     string
	Category       string
	Subcategory    string // Same value as Category in this template
	CourseTitle    string
	EnrollDate     string
	CompletionDate string
	Status         string
	VideoHours     float64
}

// Cell pairs a column letter with the value written into it.
type Cell struct {
	Column string
	Value  interface{}
}

// Cells returns the row's values in column order.
func (r Row) Cells() []Cell {
	return []Cell{
		{"B", r.UserEmail},
		{"C", r.ReportDate},
		{"E", r.Category},
		{"F", r.Subcategory},
		{"G", r.CourseTitle},
		{"H", r.EnrollDate},
		{"I", r.CompletionDate},
		{"J", r.Status},
		{"L", r.VideoHours},
	}
}
