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

// Package entry builds a single structured log line: level, message,
// optional data, errors and fields, deferred until Log is called so a
// caller can keep decorating it (conn code adds the peer address, and
// reactor code the peer or listener address or the reactor id, before
// logging).
package entry

import (
	"time"

	"github.com/sirupsen/logrus"

	logfld "github.com/nabbar/ngi/logger/fields"
	loglvl "github.com/nabbar/ngi/logger/level"
)

type Entry interface {
	// SetLogger binds the logrus.Logger the entry writes to when Log is
	// called. A nil function (or one returning nil) makes Log a no-op.
	SetLogger(fct func() *logrus.Logger) Entry

	// SetLevel overrides the entry's level.
	SetLevel(lvl loglvl.Level) Entry

	// SetEntryContext sets the timestamp, goroutine id, caller location
	// and message in one call.
	SetEntryContext(etime time.Time, stack uint64, caller, file string, line uint64, msg string) Entry

	// DataSet attaches arbitrary data to the entry.
	DataSet(data interface{}) Entry

	// FieldAdd adds a single field.
	FieldAdd(key string, val interface{}) Entry

	// FieldMerge copies every key of fields into the entry, overwriting
	// on collision.
	FieldMerge(fields logfld.Fields) Entry

	// ErrorAdd appends err to the entry's error list. When cleanNil is
	// true, nil errors are skipped.
	ErrorAdd(cleanNil bool, err ...error) Entry

	// Check logs the entry at its configured level if it carries at
	// least one non-nil error, otherwise logs it at lvlNoErr. It
	// returns whether an error was found.
	Check(lvlNoErr loglvl.Level) bool

	// Log writes the entry to the bound logger. NilLevel never logs;
	// FatalLevel calls os.Exit(1) after logging.
	Log()
}

// New returns an Entry at the given level with the current time.
func New(lvl loglvl.Level) Entry {
	return newModel(lvl)
}
