package report

import "context"

// Writer renders rows into a report file and returns its path.
type Writer interface {
	Write(rows []Row) (string, error)
}

// Publisher copies a finished report to the remote drop location and
// returns the remote path it was written to.
type Publisher interface {
	Publish(ctx context.Context, localPath string, transfer TransferConfig) (string, error)
}
