/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package logger is the structured logger shared by the reactor, the
// connection state machine and the framing adapters. It wraps logrus
// with level filtering and a default field set, in the same shape the
// rest of this module's ambient packages use (cache, errors).
//
// Per-protocol options (syslog, file rotation, gorm/hclog bridges) are
// intentionally not carried here: wiring the logger's destination and
// format is left to the embedding application, the same way the reactor
// itself never decides where its bytes come from.
package logger

import (
	"io"

	jww "github.com/spf13/jwalterweatherman"

	loglvl "github.com/nabbar/ngi/logger/level"

	logent "github.com/nabbar/ngi/logger/entry"
	logfld "github.com/nabbar/ngi/logger/fields"
)

// Logger is the structured logging facade used across this module.
type Logger interface {
	io.Writer

	// SetLevel changes the minimal level a message must have to be
	// emitted.
	SetLevel(lvl loglvl.Level)

	// GetLevel returns the current minimal level.
	GetLevel() loglvl.Level

	// SetFields replaces the default fields merged into every entry.
	SetFields(field logfld.Fields)

	// GetFields returns the default fields merged into every entry.
	GetFields() logfld.Fields

	// Entry returns a new Entry pre-bound to this logger, with message
	// formatted via fmt.Sprintf if args is non-empty.
	Entry(lvl loglvl.Level, message string, args ...interface{}) logent.Entry

	// Debug logs message at DebugLevel.
	Debug(message string, args ...interface{})

	// Info logs message at InfoLevel.
	Info(message string, args ...interface{})

	// Warning logs message at WarnLevel.
	Warning(message string, args ...interface{})

	// Error logs message at ErrorLevel.
	Error(message string, args ...interface{})

	// Fatal logs message at FatalLevel, then os.Exit(1).
	Fatal(message string, args ...interface{})

	// CheckError logs at lvlKO if err is non-nil, at lvlOK otherwise,
	// and reports whether err was non-nil.
	CheckError(lvlKO, lvlOK loglvl.Level, message string, err error) bool

	// SetSPF13Level bridges jwalterweatherman, the logging package used
	// internally by cobra and viper, onto this Logger so a CLI built on
	// those libraries (ngi/cmd/ngi-echo) reports through the same sink
	// as the reactor itself. Passing a nil log discards jww's stdout
	// leg; its threshold always tracks lvl.
	SetSPF13Level(lvl loglvl.Level, log *jww.Notepad)
}
