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

package socket

import (
	"sync/atomic"

	libconn "github.com/nabbar/ngi/conn"
	libptc "github.com/nabbar/ngi/network/protocol"
)

// ctx is the concrete Context. state is an atomic.Uint32 because
// State() may be read from any goroutine while the reactor goroutine
// advances it from inside adapter's callbacks.
type ctx struct {
	c     libconn.Connection
	proto libptc.NetworkProtocol
	state atomic.Uint32
}

func newContext(c libconn.Connection, proto libptc.NetworkProtocol) *ctx {
	return &ctx{c: c, proto: proto}
}

func (x *ctx) Connection() libconn.Connection   { return x.c }
func (x *ctx) Protocol() libptc.NetworkProtocol { return x.proto }
func (x *ctx) State() ConnState                 { return ConnState(x.state.Load()) }

func (x *ctx) setState(s ConnState) { x.state.Store(uint32(s)) }

// adapter binds a Handler to a conn.Connection, translating conn's
// capability-probed InputHandler/CloseHandler/ExceptionHandler trio
// into Handler's single interface and keeping ctx's State in step
// with the connection's lifecycle.
type adapter struct {
	ctx    *ctx
	h      Handler
	filter ErrorFilter
}

func bind(c libconn.Connection, proto libptc.NetworkProtocol, h Handler, filter ErrorFilter) *ctx {
	x := newContext(c, proto)
	a := &adapter{ctx: x, h: h, filter: filter}
	h.OnOpen(x)
	_ = c.SetHandler(a)
	return x
}

func (a *adapter) HandleInput(_ libconn.Connection, chunk []byte) {
	a.h.OnInput(a.ctx, chunk)
}

func (a *adapter) HandleClose(_ libconn.Connection, reason string) {
	a.ctx.setState(StateClosed)
	a.h.OnClose(a.ctx, reason)
}

func (a *adapter) HandleException(c libconn.Connection, err error) {
	keepOpen := a.h.OnError(a.ctx, err)
	if a.filter != nil {
		keepOpen = keepOpen || a.filter(err)
	}
	if !keepOpen {
		c.Close()
	}
}
