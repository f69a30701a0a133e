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
	"golang.org/x/sys/unix"

	liberr "github.com/nabbar/ngi/errors"
	loglvl "github.com/nabbar/ngi/logger/level"

	libconn "github.com/nabbar/ngi/conn"
	libproto "github.com/nabbar/ngi/network/protocol"
)

// ConnectHandler receives the outcome of a non-blocking Connect: either
// Connected once the socket is writable with no pending SO_ERROR, or
// FailedConnect if it never became so.
type ConnectHandler interface {
	Connected(c libconn.Connection)
	FailedConnect(err liberr.Error)
}

type connectEntry struct {
	fd      int
	cfg     ListenConfig
	handler ConnectHandler
}

// Connect opens a non-blocking socket to cfg.Address and reports the
// outcome to handler on the selector goroutine: Connected with a bound
// Connection on success, FailedConnect carrying the mapped syscall
// error otherwise. It never blocks the caller.
func (r *Reactor) Connect(cfg ListenConfig, handler ConnectHandler) liberr.Error {
	fd, sa, domain, err := dialSocket(cfg)
	if err != nil {
		e := ErrorConnectionFailed.Error(err)
		r.Post(func() { handler.FailedConnect(e) })
		return nil
	}

	cerr := unix.Connect(fd, sa)
	if cerr == nil {
		// connected immediately (common for unix-domain, loopback).
		r.Post(func() { r.finishConnect(fd, cfg, handler, domain) })
		return nil
	}

	if cerr != unix.EINPROGRESS {
		_ = unix.Close(fd)
		e := ErrorConnectionFailed.Error(cerr)
		r.Post(func() { handler.FailedConnect(e) })
		return nil
	}

	ce := &connectEntry{fd: fd, cfg: cfg, handler: handler}

	r.m.Lock()
	r.connecting[fd] = ce
	r.m.Unlock()

	r.ensureStarted()
	_ = r.poll.add(fd)
	_ = r.poll.setWritable(fd, true)
	r.wake.pulse()

	return nil
}

func dialSocket(cfg ListenConfig) (fd int, sa unix.Sockaddr, domain int, err error) {
	switch cfg.Protocol {
	case libproto.NetworkUnix:
		domain = unix.AF_UNIX
		sa = &unix.SockaddrUnix{Name: cfg.Address}
	default:
		domain = unix.AF_INET
		a, perr := resolveTCP4(cfg.Address)
		if perr != nil {
			return 0, nil, 0, perr
		}
		sa = a
	}

	fd, err = unix.Socket(domain, unix.SOCK_STREAM, 0)
	if err != nil {
		return 0, nil, 0, err
	}

	if err = unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return 0, nil, 0, err
	}

	return fd, sa, domain, nil
}

// pollConnecting is called from dispatch when a connecting fd becomes
// writable: per the connect(2) convention this means either connected
// or failed, disambiguated by SO_ERROR.
func (r *Reactor) pollConnecting(ce *connectEntry) {
	r.m.Lock()
	delete(r.connecting, ce.fd)
	r.m.Unlock()

	_ = r.poll.remove(ce.fd)

	soErr, err := unix.GetsockoptInt(ce.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		_ = unix.Close(ce.fd)
		ce.handler.FailedConnect(ErrorConnectionFailed.Error(err))
		return
	}
	if soErr != 0 {
		_ = unix.Close(ce.fd)
		ce.handler.FailedConnect(ErrorConnectionFailed.Error(unix.Errno(soErr)))
		return
	}

	r.finishConnect(ce.fd, ce.cfg, ce.handler, 0)
}

func (r *Reactor) finishConnect(fd int, cfg ListenConfig, handler ConnectHandler, _ int) {
	var peer string
	if cfg.Protocol == libproto.NetworkUnix {
		peer = cfg.Address
	} else if sa, err := unix.Getpeername(fd); err == nil {
		peer = sockaddrString(sa)
	}

	c := libconn.New(&fdSocket{fd: fd}, peer, r, r.log)
	r.registerConn(fd, c, nil)

	r.log.Entry(loglvl.DebugLevel, "connected").FieldAdd("peer", peer).Log()
	handler.Connected(c)
}
