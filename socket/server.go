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
	"os"

	libconn "github.com/nabbar/ngi/conn"
	socketcfg "github.com/nabbar/ngi/socket/config"

	"github.com/nabbar/ngi/reactor"
)

// server wraps a reactor.Listener, rebinding each accepted connection
// through bind so Handler sees one unified interface instead of
// conn's capability trio.
type server struct {
	l reactor.Listener
}

// NewServer binds cfg and accepts connections on r, dispatching every
// one to handler through a Context. cfg.Network must be a stream
// protocol (NetworkTCP variants or NetworkUnix); datagram protocols
// have no per-peer connection to bind a Handler to and are served
// directly through reactor.UDPListen instead.
func NewServer(r *reactor.Reactor, cfg socketcfg.Server, handler Handler, filter ErrorFilter) (Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Network.IsStream() {
		return nil, socketcfg.ErrInvalidProtocol
	}

	lcfg := reactor.ListenConfig{
		Protocol: cfg.Network,
		Address:  cfg.Address,
	}

	l, lerr := r.Listen(lcfg, func(c libconn.Connection) {
		bind(c, cfg.Network, handler, filter)
	})
	if lerr != nil {
		return nil, lerr
	}

	if cfg.Network.IsUnix() && cfg.PermFile != 0 {
		_ = os.Chmod(cfg.Address, cfg.PermFile)
	}
	if cfg.Network.IsUnix() && cfg.GroupPerm >= 0 {
		_ = os.Chown(cfg.Address, -1, int(cfg.GroupPerm))
	}

	return &server{l: l}, nil
}

func (s *server) Address() string { return s.l.Address() }

func (s *server) Close() { s.l.Close(nil) }
