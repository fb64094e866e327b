// internal/domain/activity/record.go
package activity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one user-course-activity row returned by the analytics endpoint.
// Nullable fields are empty strings or nil after decoding.
type Record struct {
	UserEmail                 string
	CourseCategory            string
	CourseTitle               string
	CourseEnrollDate          string
	CourseFirstCompletionDate string
	VideoConsumedMinutes      *float64
}

// ResultSet keeps the records in source order. Total and NextPage echo the
// endpoint's paging fields; only the first page is ever requested.
type ResultSet struct {
	Records  []Record
	Total    int
	NextPage string
}

// Len returns the number of records.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Records)
}

// Minutes accepts a JSON number, a numeric string or null.
type Minutes struct {
	Value *float64
}

func (m *Minutes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		m.Value = nil
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			m.Value = nil
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid minutes value %s", string(data))
	}
	m.Value = &v
	return nil
}

// wireRecord mirrors the JSON object; pointers distinguish absent/null from empty.
type wireRecord struct {
	UserEmail                 *string `json:"user_email"`
	CourseCategory            *string `json:"course_category"`
	CourseTitle               *string `json:"course_title"`
	CourseEnrollDate          *string `json:"course_enroll_date"`
	CourseFirstCompletionDate *string `json:"course_first_completion_date"`
	NumVideoConsumedMinutes   Minutes `json:"num_video_consumed_minutes"`
}

type wireResponse struct {
	Results *[]wireRecord `json:"results"`
	Count   int           `json:"count"`
	Next    *string       `json:"next"`
}
