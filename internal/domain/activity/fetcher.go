package activity

import "context"

// Fetcher retrieves the user-course-activity result set for an account.
type Fetcher interface {
	Fetch(ctx context.Context, creds Credentials) (*ResultSet, error)
}
