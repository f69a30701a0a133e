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

package errors

import "fmt"

// CodeError is a package-scoped numeric error code. Every package
// that needs coded errors reserves a 100-wide range below (100, 200,
// 300, 400, all under MinAvailable), and defines its own iota block
// starting at its Min constant.
type CodeError uint16

// MinAvailable is the first code number not reserved by this module.
// A package outside this repo that embeds this library can start its
// own range above it without colliding with these.
const MinAvailable = 4000

const (
	MinPkgNGIReactor CodeError = iota*100 + 100
	MinPkgNGIConn
	MinPkgNGIFraming
	MinPkgNGISocket
)

// Error builds a coded Error out of this code, formatting msg
// plainly and attaching parent as the wrapped cause.
func (c CodeError) Error(parent ...error) Error {
	return New(c, c.message(), parent...)
}

// Errorf is Error with a formatted message instead of the registered
// one, for call sites that need to embed a runtime value.
func (c CodeError) Errorf(format string, args ...interface{}) Error {
	return New(c, fmt.Sprintf(format, args...))
}

func (c CodeError) message() string {
	return lookupMessage(c)
}
