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

// Package errors is a small coded-error type: every boundary error in
// this module carries a CodeError drawn from a package-owned range
// (see modules.go), an optional wrapped cause, and the call site that
// created it, instead of a bare string. It is not a general-purpose
// error framework — no multi-format marshalling, no error pool: just
// enough to let a caller compare a returned error against a known
// code and, when debugging, see where it came from.
package errors

import "strings"

// Error is a CodeError paired with a message and, optionally, the
// error it wraps.
type Error interface {
	error

	// Code returns the numeric code as a plain uint16, for callers
	// that don't want to import CodeError.
	Code() uint16

	// GetCode returns the CodeError value itself.
	GetCode() CodeError

	// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
	Unwrap() []error

	// GetTrace returns "file#line" for the call site that built this
	// Error, or "" if the frame could not be captured.
	GetTrace() string

	// GetTraceSlice returns this Error's own trace followed by the
	// trace of every wrapped cause that is itself an Error, in
	// parent-chain order.
	GetTraceSlice() []string
}

type ers struct {
	code  CodeError
	msg   string
	cause []error
	at    frame
}

func (e *ers) Code() uint16 { return uint16(e.code) }

func (e *ers) GetCode() CodeError { return e.code }

func (e *ers) Unwrap() []error { return e.cause }

func (e *ers) GetTrace() string { return e.at.String() }

func (e *ers) GetTraceSlice() []string {
	r := []string{e.GetTrace()}

	for _, c := range e.cause {
		if pe, ok := c.(Error); ok {
			r = append(r, pe.GetTraceSlice()...)
		}
	}

	return r
}

func (e *ers) Error() string {
	var b strings.Builder
	b.WriteString(e.msg)
	for _, c := range e.cause {
		if c == nil {
			continue
		}
		b.WriteString(": ")
		b.WriteString(c.Error())
	}
	return b.String()
}

// New builds an Error carrying code, msg and any non-nil parent
// errors as its wrapped cause, capturing its caller's frame.
func New(code CodeError, msg string, parent ...error) Error {
	return &ers{code: code, msg: msg, cause: nonNil(parent), at: getFrame()}
}

func nonNil(in []error) []error {
	out := make([]error, 0, len(in))
	for _, e := range in {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
