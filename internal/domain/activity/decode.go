package activity

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is returned when a record lacks a required string field.
var ErrMissingField = errors.New("required field missing")

// ErrMalformedResponse wraps every decode failure of an activity response.
var ErrMalformedResponse = errors.New("malformed activity response")

// ErrNoResults is returned when the response has no top-level "results" array.
var ErrNoResults = errors.New(`response has no "results" array`)

// DecodeResultSet parses an analytics response body. A record without
// user_email, course_category or course_title fails the whole set.
func DecodeResultSet(body []byte) (*ResultSet, error) {
	rs, err := decodeResultSet(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return rs, nil
}

func decodeResultSet(body []byte) (*ResultSet, error) {
	var resp wireResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, ErrNoResults
	}

	rs := &ResultSet{
		Records:  make([]Record, 0, len(*resp.Results)),
		Total:    resp.Count,
		NextPage: deref(resp.Next),
	}
	for i, w := range *resp.Results {
		rec, err := w.toRecord()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rs.Records = append(rs.Records, rec)
	}
	return rs, nil
}

func (w wireRecord) toRecord() (Record, error) {
	required := []struct {
		name  string
		value *string
	}{
		{"user_email", w.UserEmail},
		{"course_category", w.CourseCategory},
		{"course_title", w.CourseTitle},
	}
	for _, f := range required {
		if f.value == nil {
			return Record{}, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	return Record{
		UserEmail:                 *w.UserEmail,
		CourseCategory:            *w.CourseCategory,
		CourseTitle:               *w.CourseTitle,
		CourseEnrollDate:          deref(w.CourseEnrollDate),
		CourseFirstCompletionDate: deref(w.CourseFirstCompletionDate),
		VideoConsumedMinutes:      w.NumVideoConsumedMinutes.Value,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
