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

package logger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	logent "github.com/nabbar/ngi/logger/entry"
	logfld "github.com/nabbar/ngi/logger/fields"
	loglvl "github.com/nabbar/ngi/logger/level"
)

type lgr struct {
	m sync.RWMutex
	l loglvl.Level
	f logfld.Fields
	r *logrus.Logger
}

// New returns a Logger writing through logrus.New(), at InfoLevel,
// with an empty default field set bound to ctx.
func New(ctx context.Context) Logger {
	r := logrus.New()
	r.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		FullTimestamp:    false,
	})

	return &lgr{
		l: loglvl.InfoLevel,
		f: logfld.New(ctx),
		r: r,
	}
}

func (o *lgr) SetLevel(lvl loglvl.Level) {
	o.m.Lock()
	defer o.m.Unlock()

	o.l = lvl
	o.r.SetLevel(lvl.Logrus())
}

func (o *lgr) GetLevel() loglvl.Level {
	o.m.RLock()
	defer o.m.RUnlock()

	return o.l
}

func (o *lgr) SetFields(field logfld.Fields) {
	o.m.Lock()
	defer o.m.Unlock()

	o.f = field
}

func (o *lgr) GetFields() logfld.Fields {
	o.m.RLock()
	defer o.m.RUnlock()

	return o.f
}

func (o *lgr) Write(p []byte) (int, error) {
	o.Entry(loglvl.InfoLevel, string(p)).Log()
	return len(p), nil
}

func (o *lgr) Entry(lvl loglvl.Level, message string, args ...interface{}) logent.Entry {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	o.m.RLock()
	fld := o.f
	logger := o.r
	o.m.RUnlock()

	e := logent.New(lvl).
		SetLogger(func() *logrus.Logger { return logger }).
		SetEntryContext(time.Now(), 0, "", "", 0, message)

	if fld != nil {
		e.FieldMerge(fld)
	}

	return e
}

func (o *lgr) log(lvl loglvl.Level, message string, args ...interface{}) {
	if lvl > o.GetLevel() {
		return
	}

	o.Entry(lvl, message, args...).Log()
}

func (o *lgr) Debug(message string, args ...interface{}) {
	o.log(loglvl.DebugLevel, message, args...)
}

func (o *lgr) Info(message string, args ...interface{}) {
	o.log(loglvl.InfoLevel, message, args...)
}

func (o *lgr) Warning(message string, args ...interface{}) {
	o.log(loglvl.WarnLevel, message, args...)
}

func (o *lgr) Error(message string, args ...interface{}) {
	o.log(loglvl.ErrorLevel, message, args...)
}

func (o *lgr) Fatal(message string, args ...interface{}) {
	o.log(loglvl.FatalLevel, message, args...)
}

func (o *lgr) CheckError(lvlKO, lvlOK loglvl.Level, message string, err error) bool {
	return o.Entry(lvlKO, message).ErrorAdd(true, err).Check(lvlOK)
}
