package clog

import "log/slog"

// Level is the severity a response or error code is reported at.
type Level int

const (
	LevelDebug Level = iota + 1
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) Slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// HTTPStatusToLevel reports client cancellations (499) at info, other 4xx
// at warn and everything else outside 1xx-3xx at error.
func HTTPStatusToLevel(status int) Level {
	switch {
	case status >= 100 && status < 400, status == 499:
		return LevelInfo
	case status >= 400 && status < 500:
		return LevelWarn
	default:
		return LevelError
	}
}
