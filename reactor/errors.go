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

package reactor

import (
	"fmt"

	liberr "github.com/nabbar/ngi/errors"
)

const (
	// ErrorTimeout is returned by Wait when the deadline elapses
	// before the registered set drains.
	ErrorTimeout liberr.CodeError = iota + liberr.MinPkgNGIReactor

	// ErrorConnectionFailed wraps the mapped error-code name or string
	// form of a failed non-blocking connect, delivered to
	// handler.FailedConnect, never returned from Connect itself.
	// UDPSend returns it for a failed resolve, socket or send.
	ErrorConnectionFailed

	// ErrorListenFailed wraps a bind/listen syscall failure.
	ErrorListenFailed

	// ErrorReactorStopped is registered with a message but returned by
	// no function of this package: a Reactor has no explicit close,
	// and Connect/Listen/UDPListen restart a stopped selector goroutine.
	ErrorReactorStopped
)

func init() {
	if liberr.ExistInMapMessage(ErrorTimeout) {
		panic(fmt.Errorf("error code collision with package ngi/reactor"))
	}
	liberr.RegisterIdFctMessage(ErrorTimeout, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorTimeout:
		return "timed out waiting for the reactor's selector thread to exit"
	case ErrorConnectionFailed:
		return "connect failed"
	case ErrorListenFailed:
		return "listen failed"
	case ErrorReactorStopped:
		return "reactor is stopped"
	}

	return liberr.NullMessage
}
