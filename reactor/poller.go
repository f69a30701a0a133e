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

import "time"

// readiness flags an Event reports for a registered fd.
type readiness uint8

const (
	readable readiness = 1 << iota
	writable
)

// event is one readiness notification returned by a poller.Wait call.
type event struct {
	fd    int
	flags readiness
}

// poller is the selector-map primitive the reactor drives: register a
// fd for readability and/or writability, wait for a batch of
// readiness events bounded by a timeout, and tear down.
//
// poller_linux.go backs this with real epoll via golang.org/x/sys/unix;
// poller_other.go provides a portable, less efficient fallback for
// every other GOOS so the package still builds and behaves correctly
// off Linux.
type poller interface {
	// add registers fd, initially for read readiness only.
	add(fd int) error

	// setWritable toggles whether fd is also armed for write
	// readiness, called whenever a Connection's output queue becomes
	// non-empty or is fully drained.
	setWritable(fd int, want bool) error

	// remove deregisters fd. Safe to call even if fd was already
	// removed by a prior close.
	remove(fd int) error

	// wait blocks up to timeout for readiness events. timeout<=0
	// means return immediately with whatever is already ready.
	wait(timeout time.Duration) ([]event, error)

	// close releases the poller's own resources (e.g. the epoll fd).
	close() error
}
