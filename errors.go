package timetracker

import "errors"

var (
	ErrNoWorkspace           = errors.New("no workspace folder found")
	ErrNoActiveSession       = errors.New("timer not running")
	ErrNoPreviousDescription = errors.New("no previous description found")
	ErrNotFound              = errors.New("not found")
)
