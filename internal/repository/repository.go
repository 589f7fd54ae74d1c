package repository

import "errors"

var (
	// ErrNoLogAvailable is returned when a download is requested before anything was saved.
	ErrNoLogAvailable = errors.New("no log files available")
	// ErrNoRecords is returned when the archive holds no rows.
	ErrNoRecords = errors.New("no archived records")
)
