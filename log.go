package cbor

import (
	golog "github.com/bnclabs/golog"
)

// Logger is the subset of golog's interface the codec calls; it lets a
// caller inject a logger without taking a direct golog dependency at the
// call site. golog.SetLogger satisfies it directly.
type Logger interface {
	Errorf(format string, v ...interface{})
	Tracef(format string, v ...interface{})
}

// log is the package-level logger used when Options.Logger is nil, seeded
// the same way the teacher's example/main.go and perf/main.go bootstrap
// gofast's own logging: a single golog.SetLogger call before anything else
// runs. Unlike the teacher's package-global `log` variable in its own
// log.go (superseded upstream by golog itself), this is only ever a
// fallback — per-call logging goes through Options.Logger so concurrent
// Encode/Decode calls with distinct loggers don't interfere.
var log Logger = golog.SetLogger(nil, Settings{"log.level": "error", "log.file": ""})

// SetLogger installs the package-wide fallback logger, mirroring
// golog.SetLogger(nil, settings) from the teacher's bootstrap sequence
// (example/main.go, perf/main.go).
func SetLogger(logger Logger, settings Settings) Logger {
	if logger != nil {
		log = logger
		return log
	}
	log = golog.SetLogger(nil, settings)
	return log
}
