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

// Package socket is the ergonomic front door over reactor and conn: a
// Server or Client is built from a small config.Server/config.Client
// value and a single Handler, and every state-change callback
// (open, input, close, error) arrives as one Context rather than a
// bare conn.Connection plus capability-probed handler interfaces.
package socket

import (
	libconn "github.com/nabbar/ngi/conn"
	libptc "github.com/nabbar/ngi/network/protocol"
)

// ConnState is the lifecycle stage of a Context, advanced exactly
// once per transition and never reversed.
type ConnState uint8

const (
	// StateOpen is the state from the first OnOpen call until close
	// or error tears the connection down.
	StateOpen ConnState = iota

	// StateClosing names the span between a local Close and the
	// connection's terminal close. This package never sets it: a
	// Context goes straight from StateOpen to StateClosed.
	StateClosing

	// StateClosed is terminal: Context.Connection() is no longer safe
	// to write to.
	StateClosed
)

// String renders the state for logging.
func (s ConnState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Context is handed to every Handler callback. It carries the
// underlying Connection plus the bookkeeping (state, protocol) a
// Handler would otherwise have to track itself.
type Context interface {
	// Connection is the underlying byte stream. Write/Writelines/Close
	// are safe from any goroutine; do not call SetHandler on it, the
	// socket package owns that binding.
	Connection() libconn.Connection

	// State is this connection's current lifecycle stage.
	State() ConnState

	// Protocol is the network family the Server or Client was
	// configured with.
	Protocol() libptc.NetworkProtocol
}

// ErrorFilter decides whether an error reaching a Handler's OnError
// should be treated as transient (return true: the socket package
// does not call Close itself) or fatal (return false: Close is called
// after OnError returns). A nil ErrorFilter treats every error as
// fatal. Either way conn closes the connection after every exception
// event it delivers, so a true result does not keep it open.
type ErrorFilter func(err error) bool

// HandlerFunc adapts a plain function into a Handler that only cares
// about input, leaving OnOpen/OnClose/OnError as no-ops.
type HandlerFunc func(ctx Context, chunk []byte)

// OnOpen implements Handler with a no-op.
func (HandlerFunc) OnOpen(Context) {}

// OnInput implements Handler by calling the wrapped function.
func (f HandlerFunc) OnInput(ctx Context, chunk []byte) { f(ctx, chunk) }

// OnClose implements Handler with a no-op.
func (HandlerFunc) OnClose(Context, string) {}

// OnError implements Handler by treating every error as fatal.
func (HandlerFunc) OnError(Context, error) bool { return false }

// Handler is the single interface a Server or Client binds, replacing
// conn's capability-probed InputHandler/CloseHandler/ExceptionHandler
// trio with one interface every socket user implements in full.
type Handler interface {
	// OnOpen fires once, before the first OnInput, with the
	// connection already reachable through ctx.Connection().
	OnOpen(ctx Context)

	// OnInput fires once per chunk read off the socket, in order.
	OnInput(ctx Context, chunk []byte)

	// OnClose fires once, when the connection reaches StateClosed.
	OnClose(ctx Context, reason string)

	// OnError fires for an exception event conn would otherwise
	// deliver to an ExceptionHandler. The return value is an
	// ErrorFilter-shaped decision: false calls Close once OnError
	// returns, true does not. conn closes the connection after the
	// exception in both cases.
	OnError(ctx Context, err error) bool
}

// Server is the handle returned by NewServer.
type Server interface {
	// Address is the bound local address.
	Address() string

	// Close stops accepting and tears down every live connection.
	Close()
}

// Client is the handle returned by Dial once a connection attempt has
// been issued; FailedConnect fires on the reactor goroutine via the
// Handler's OnError if the dial itself never reaches OnOpen.
type Client interface {
	// Close closes the underlying connection, if one was
	// established. Safe to call even if the dial is still pending or
	// failed outright.
	Close()
}
