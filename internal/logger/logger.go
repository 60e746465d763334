// Package logger writes error and debug logs to the console and, once the
// first message arrives, to timestamped files under a log directory.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultDumpLen limits how many bytes of a layout are logged.
// A value of 0 dumps the entire layout.
const DefaultDumpLen = 256

type Logger struct {
	dir string
	out io.Writer

	errorLogger *log.Logger
	errorPath   string
	errorOnce   sync.Once

	mu          sync.Mutex
	debugLogger *log.Logger
	debugPath   string
	debugOnce   *sync.Once

	// DumpLen caps DebugLayout output.
	DumpLen int
	// Console, when set, also receives error and warning lines.
	Console func(string)
}

// New returns a Logger writing to out (stdout when nil). An empty dir
// keeps logs off disk.
func New(dir string, debug bool, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("could not create log directory: %v", err)
			dir = ""
		}
	}
	ts := time.Now().Format("20060102-150405")
	l := &Logger{
		dir:         dir,
		out:         out,
		errorLogger: log.New(out, "", log.LstdFlags),
		DumpLen:     DefaultDumpLen,
	}
	if dir != "" {
		l.errorPath = filepath.Join(dir, fmt.Sprintf("error-%s.log", ts))
	}
	l.SetDebug(debug)
	return l
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New("", false, io.Discard)
}

// SetDebug turns the debug log on or off.
func (l *Logger) SetDebug(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !enabled {
		l.debugLogger = nil
		return
	}
	if l.dir != "" {
		ts := time.Now().Format("20060102-150405")
		l.debugPath = filepath.Join(l.dir, fmt.Sprintf("debug-%s.log", ts))
	}
	l.debugOnce = &sync.Once{}
	l.debugLogger = log.New(l.out, "", log.LstdFlags)
}

// Debugging reports whether debug output is enabled.
func (l *Logger) Debugging() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debugLogger != nil
}

func (l *Logger) openError() {
	l.errorOnce.Do(func() {
		if l.errorPath == "" {
			return
		}
		if f, err := os.Create(l.errorPath); err == nil {
			l.errorLogger.SetOutput(io.MultiWriter(l.out, f))
		}
	})
}

func (l *Logger) debug() *log.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.debugLogger == nil {
		return nil
	}
	dl, path := l.debugLogger, l.debugPath
	l.debugOnce.Do(func() {
		if path == "" {
			return
		}
		if f, err := os.Create(path); err == nil {
			dl.SetOutput(io.MultiWriter(l.out, f))
		}
	})
	return dl
}

func (l *Logger) Errorf(format string, v ...any) {
	l.openError()
	l.errorLogger.Printf(format, v...)
	if l.Console != nil {
		l.Console(fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Warnf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	l.openError()
	l.errorLogger.Printf("warning: %s", msg)
	if l.Console != nil {
		l.Console("warning: " + msg)
	}
}

func (l *Logger) Debugf(format string, v ...any) {
	if dl := l.debug(); dl != nil {
		dl.Printf(format, v...)
	}
}

// DebugLayout logs a serialized layout, truncated to DumpLen bytes.
func (l *Logger) DebugLayout(prefix, serial string) {
	dl := l.debug()
	if dl == nil {
		return
	}
	n := len(serial)
	dump := serial
	if l.DumpLen > 0 && n > l.DumpLen {
		dump = serial[:l.DumpLen]
	}
	dl.Printf("%s len=%d layout=%s", prefix, n, dump)
}
