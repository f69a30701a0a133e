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

// InputHandler is implemented by every connection handler: it receives
// each chunk read off the socket, in order, on the reactor goroutine.
// chunk aliases the reactor's read buffer and is only valid for the
// duration of the call; copy it to retain the bytes.
type InputHandler interface {
	HandleInput(c Connection, chunk []byte)
}

// CloseHandler is the optional capability a handler advertises to be
// told the connection reached its terminal state. A handler missing
// this capability is never notified; nothing breaks.
type CloseHandler interface {
	HandleClose(c Connection, reason string)
}

// ExceptionHandler is the optional capability a handler advertises to
// receive errors that can't otherwise be returned: an error returned
// by a writelines producer, or an unexpected read error. The
// connection is closed afterwards whether or not the handler has this
// capability.
type ExceptionHandler interface {
	HandleException(c Connection, err error)
}

// Handler is the minimal capability every bound handler must satisfy.
// CloseHandler and ExceptionHandler are probed for with a type
// assertion at the call site, per the tagged capability set in the
// design notes: {input, close, exception}.
type Handler interface {
	InputHandler
}

// asCloseHandler returns h's CloseHandler capability, if any.
func asCloseHandler(h Handler) (CloseHandler, bool) {
	c, ok := h.(CloseHandler)
	return c, ok
}

// asExceptionHandler returns h's ExceptionHandler capability, if any.
func asExceptionHandler(h Handler) (ExceptionHandler, bool) {
	e, ok := h.(ExceptionHandler)
	return e, ok
}
