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
	"context"

	"golang.org/x/sys/unix"

	libcache "github.com/nabbar/ngi/cache"
	liberr "github.com/nabbar/ngi/errors"
)

type udpSocket struct {
	fd int
}

// udpSenders lazily builds r's outbound-socket pool on first UDPSend.
// The pool never expires entries: a send socket is opened once per
// address family and reused for the life of the reactor.
func (r *Reactor) udpSenders() libcache.Cache[int, *udpSocket] {
	r.m.Lock()
	defer r.m.Unlock()

	if r.udpOut == nil {
		r.udpOut = libcache.New[int, *udpSocket](context.Background(), 0)
	}
	return r.udpOut
}

// UDPSend fires a best-effort, non-blocking datagram at addr, reusing a
// pooled AF_INET socket across calls rather than opening one per send.
// Short writes and transient errors are dropped, matching UDP's own
// no-delivery-guarantee contract; nothing is queued or retried.
func (r *Reactor) UDPSend(addr string, payload []byte) liberr.Error {
	sa, err := resolveTCP4(addr)
	if err != nil {
		return ErrorConnectionFailed.Error(err)
	}

	pool := r.udpSenders()

	sock, _, ok := pool.Load(unix.AF_INET)
	if !ok {
		fd, serr := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
		if serr != nil {
			return ErrorConnectionFailed.Error(serr)
		}
		if serr = unix.SetNonblock(fd, true); serr != nil {
			_ = unix.Close(fd)
			return ErrorConnectionFailed.Error(serr)
		}
		sock = &udpSocket{fd: fd}
		pool.Store(unix.AF_INET, sock)
	}

	if serr := unix.Sendto(sock.fd, payload, 0, sa); serr != nil {
		return ErrorConnectionFailed.Error(serr)
	}

	return nil
}
