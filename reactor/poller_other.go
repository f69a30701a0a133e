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

//go:build !linux

package reactor

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// pollPoller backs the reactor on every non-Linux GOOS using
// unix.Poll, a portable but O(n)-per-wait primitive (no persistent
// kernel-side interest set like epoll/kqueue). Correct and adequate
// for the connection counts this package targets; a kqueue-backed
// poller for darwin/bsd would be a direct extension, not a redesign.
type pollPoller struct {
	m        sync.Mutex
	writable map[int]bool
}

func newPoller() (poller, error) {
	return &pollPoller{writable: make(map[int]bool)}, nil
}

func (p *pollPoller) add(fd int) error {
	p.m.Lock()
	defer p.m.Unlock()
	p.writable[fd] = false
	return nil
}

func (p *pollPoller) setWritable(fd int, want bool) error {
	p.m.Lock()
	defer p.m.Unlock()
	if _, ok := p.writable[fd]; ok {
		p.writable[fd] = want
	}
	return nil
}

func (p *pollPoller) remove(fd int) error {
	p.m.Lock()
	defer p.m.Unlock()
	delete(p.writable, fd)
	return nil
}

func (p *pollPoller) wait(timeout time.Duration) ([]event, error) {
	p.m.Lock()
	fds := make([]unix.PollFd, 0, len(p.writable))
	for fd, w := range p.writable {
		ev := int16(unix.POLLIN)
		if w {
			ev |= unix.POLLOUT
		}
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: ev})
	}
	p.m.Unlock()

	ms := int(timeout / time.Millisecond)
	if timeout <= 0 {
		ms = 0
	}

	n, err := unix.Poll(fds, ms)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	out := make([]event, 0, n)
	for _, pfd := range fds {
		var flags readiness
		if pfd.Revents&unix.POLLIN != 0 {
			flags |= readable
		}
		if pfd.Revents&unix.POLLOUT != 0 {
			flags |= writable
		}
		if pfd.Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
			flags |= readable | writable
		}
		if flags != 0 {
			out = append(out, event{fd: int(pfd.Fd), flags: flags})
		}
	}

	return out, nil
}

func (p *pollPoller) close() error {
	return nil
}
