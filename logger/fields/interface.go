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

// Package fields holds the key/value set attached to a log entry, and
// the reactor/conn code stamps onto it things like the remote address
// or the reactor id, so every line for a given connection can be
// grepped together.
package fields

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Fields is a small, thread-safe key/value bag convertible to a
// logrus.Fields map, built directly on sync.Map so adding a field
// never requires copying the whole set.
type Fields interface {
	// Add stores val under key and returns the receiver, so calls chain:
	// f.Add("conn", id).Add("peer", addr).
	Add(key string, val interface{}) Fields

	// LoadAndDelete removes key and returns the value it held, if any.
	LoadAndDelete(key string) (val interface{}, loaded bool)

	// Map applies fct to every key/value pair and replaces the value
	// with fct's return, returning the receiver for chaining.
	Map(fct func(key string, val interface{}) interface{}) Fields

	// Logrus converts the current set to a logrus.Fields map.
	Logrus() logrus.Fields
}

// New returns an empty Fields. ctx is accepted for call-site symmetry
// with the rest of this module's constructors but is not otherwise
// used: the returned Fields is released by the garbage collector like
// any other value once it is no longer referenced.
func New(ctx context.Context) Fields {
	return newModel(ctx)
}
