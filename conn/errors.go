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

package conn

import (
	"fmt"

	liberr "github.com/nabbar/ngi/errors"
)

const (
	// ErrorHandlerAlreadySet is returned by SetHandler when a handler
	// is already bound; binding is a one-shot operation.
	ErrorHandlerAlreadySet liberr.CodeError = iota + liberr.MinPkgNGIConn

	// ErrorConnectionClosed is returned by Write/Writelines when
	// called on a connection whose output queue has already reached
	// END-OF-DATA. Close returns nothing and is idempotent.
	ErrorConnectionClosed
)

func init() {
	if liberr.ExistInMapMessage(ErrorHandlerAlreadySet) {
		panic(fmt.Errorf("error code collision with package ngi/conn"))
	}
	liberr.RegisterIdFctMessage(ErrorHandlerAlreadySet, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorHandlerAlreadySet:
		return "a handler is already bound to this connection"
	case ErrorConnectionClosed:
		return "connection is closed"
	}

	return liberr.NullMessage
}
