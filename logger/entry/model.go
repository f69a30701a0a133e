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

package entry

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	logfld "github.com/nabbar/ngi/logger/fields"
	loglvl "github.com/nabbar/ngi/logger/level"
)

const (
	fieldTime    = "time"
	fieldLevel   = "level"
	fieldStack   = "stack"
	fieldCaller  = "caller"
	fieldFile    = "file"
	fieldLine    = "line"
	fieldMessage = "message"
	fieldError   = "error"
	fieldData    = "data"
)

type model struct {
	log func() *logrus.Logger

	level   loglvl.Level
	time    time.Time
	stack   uint64
	caller  string
	file    string
	line    uint64
	message string
	data    interface{}
	errs    []error
	fields  logfld.Fields
}

func newModel(lvl loglvl.Level) *model {
	return &model{
		level:  lvl,
		time:   time.Now(),
		fields: logfld.New(context.Background()),
	}
}

func (e *model) SetLogger(fct func() *logrus.Logger) Entry {
	e.log = fct
	return e
}

func (e *model) SetLevel(lvl loglvl.Level) Entry {
	e.level = lvl
	return e
}

func (e *model) SetEntryContext(etime time.Time, stack uint64, caller, file string, line uint64, msg string) Entry {
	e.time = etime
	e.stack = stack
	e.caller = caller
	e.file = file
	e.line = line
	e.message = msg
	return e
}

func (e *model) DataSet(data interface{}) Entry {
	e.data = data
	return e
}

func (e *model) FieldAdd(key string, val interface{}) Entry {
	e.fields.Add(key, val)
	return e
}

func (e *model) FieldMerge(fields logfld.Fields) Entry {
	if fields == nil {
		return e
	}

	for k, v := range fields.Logrus() {
		e.fields.Add(k, v)
	}

	return e
}

func (e *model) ErrorAdd(cleanNil bool, err ...error) Entry {
	for _, er := range err {
		if cleanNil && er == nil {
			continue
		}
		e.errs = append(e.errs, er)
	}

	return e
}

func (e *model) Check(lvlNoErr loglvl.Level) bool {
	found := false

	for _, er := range e.errs {
		if er != nil {
			found = true
			break
		}
	}

	if !found {
		e.level = lvlNoErr
	}

	e.Log()
	return found
}

func (e *model) Log() {
	if e.log == nil || e.level == loglvl.NilLevel {
		return
	}

	log := e.log()
	if log == nil {
		return
	}

	tag := logrus.Fields{fieldLevel: e.level.String()}

	if !e.time.IsZero() {
		tag[fieldTime] = e.time.Format(time.RFC3339Nano)
	}
	if e.stack > 0 {
		tag[fieldStack] = e.stack
	}
	if e.caller != "" {
		tag[fieldCaller] = e.caller
	} else if e.file != "" {
		tag[fieldFile] = e.file
	}
	if e.line > 0 {
		tag[fieldLine] = e.line
	}
	if e.message != "" {
		tag[fieldMessage] = e.message
	}
	if e.data != nil {
		tag[fieldData] = e.data
	}

	if len(e.errs) > 0 {
		msg := make([]string, 0, len(e.errs))
		for _, er := range e.errs {
			if er != nil {
				msg = append(msg, er.Error())
			}
		}
		if len(msg) > 0 {
			tag[fieldError] = strings.Join(msg, ", ")
		}
	}

	for k, v := range e.fields.Logrus() {
		tag[k] = v
	}

	log.WithFields(tag).Log(e.level.Logrus())

	if e.level == loglvl.FatalLevel {
		os.Exit(1)
	}
}
