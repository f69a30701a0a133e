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
	"sync"

	liberr "github.com/nabbar/ngi/errors"

	libconn "github.com/nabbar/ngi/conn"
	socketcfg "github.com/nabbar/ngi/socket/config"

	"github.com/nabbar/ngi/reactor"
)

// client implements Client and reactor.ConnectHandler: Connected
// binds handler through the usual adapter, FailedConnect routes
// straight to handler.OnError with a nil Context since no connection
// was ever established.
type client struct {
	handler Handler
	filter  ErrorFilter
	proto   socketcfg.Client

	m sync.Mutex
	c libconn.Connection
}

// Dial issues a non-blocking connection attempt on r and returns
// immediately; handler.OnOpen fires once the connection completes,
// or handler.OnError fires (with a nil Context) if it never does.
func Dial(r *reactor.Reactor, cfg socketcfg.Client, handler Handler, filter ErrorFilter) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cl := &client{handler: handler, filter: filter, proto: cfg}

	lcfg := reactor.ListenConfig{Protocol: cfg.Network, Address: cfg.Address}
	if err := r.Connect(lcfg, cl); err != nil {
		return nil, err
	}

	return cl, nil
}

func (cl *client) Connected(c libconn.Connection) {
	cl.m.Lock()
	cl.c = c
	cl.m.Unlock()

	bind(c, cl.proto.Network, cl.handler, cl.filter)
}

func (cl *client) FailedConnect(err liberr.Error) {
	cl.handler.OnError(nil, err)
}

func (cl *client) Close() {
	cl.m.Lock()
	c := cl.c
	cl.m.Unlock()

	if c != nil {
		c.Close()
	}
}
