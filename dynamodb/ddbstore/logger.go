package ddbstore

import (
	"log"

	"github.com/dgraph-io/badger/v4"
)

// LogAdapter routes BadgerDB's logs to a standard library logger. Debug
// output is dropped unless Verbose is set.
type LogAdapter struct {
	Logger  *log.Logger
	Verbose bool
}

var _ badger.Logger = (*LogAdapter)(nil)

func (l *LogAdapter) Errorf(format string, args ...any) {
	l.Logger.Printf("badger ERROR: "+format, args...)
}

func (l *LogAdapter) Warningf(format string, args ...any) {
	l.Logger.Printf("badger WARN: "+format, args...)
}

func (l *LogAdapter) Infof(format string, args ...any) {
	if l.Verbose {
		l.Logger.Printf("badger INFO: "+format, args...)
	}
}

func (l *LogAdapter) Debugf(format string, args ...any) {
	if l.Verbose {
		l.Logger.Printf("badger DEBUG: "+format, args...)
	}
}
