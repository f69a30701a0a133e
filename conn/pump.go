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

import (
	"errors"
	"io"
	"syscall"

	loglvl "github.com/nabbar/ngi/logger/level"
)

// isTransient reports whether err is an expected, retry-worthy I/O
// condition: would-block, interrupted, or out-of-buffers. These are
// silently retried on the next readiness event rather than closing
// the connection.
func isTransient(err error) bool {
	return errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EWOULDBLOCK) ||
		errors.Is(err, syscall.EINTR) ||
		errors.Is(err, syscall.ENOBUFS)
}

// PumpReadable is invoked by the reactor when the socket is readable.
// It reads up to ReadChunkSize repeatedly until the socket would
// block, delivering each chunk to the bound (or not-yet-bound)
// handler. A zero-length read signals peer close.
func (c *impl) PumpReadable() {
	buf := make([]byte, ReadChunkSize)

	for {
		n, err := c.sock.Read(buf)

		if err != nil {
			if isTransient(err) {
				return
			}
			if err == io.EOF {
				c.forceClose("end of input")
				return
			}
			c.deliverException(err)
			c.forceClose(err.Error())
			return
		}

		if n == 0 {
			c.forceClose("end of input")
			return
		}

		c.deliverInput(buf[:n])

		if n < len(buf) {
			// short read: the socket drained for this readiness
			// event, the rest will arrive on the next one.
			return
		}
	}
}

// PumpWritable is invoked by the reactor when the socket is writable
// and the output queue is non-empty. It coalesces queued buffers up
// to WriteCoalesceSize, sends what it can, reinserts any unsent tail,
// and closes the connection once END-OF-DATA has been fully drained.
func (c *impl) PumpWritable() {
	chunk, eod, err := c.out.coalesce()

	if len(chunk) > 0 {
		n, serr := c.sock.Send(chunk)

		if serr != nil {
			if isTransient(serr) {
				c.out.requeueUnsent(chunk)
				return
			}
			c.forceClose(serr.Error())
			return
		}

		if n < len(chunk) {
			c.out.requeueUnsent(chunk[n:])
			return
		}
	}

	if err != nil {
		c.deliverException(err)
		c.forceClose(err.Error())
		return
	}

	if eod {
		c.out.markDrained()
		c.logEntry(loglvl.DebugLevel, "half-close: output drained")
		c.forceClose("local close")
	}
}

// HasPendingOutput reports whether the reactor should keep write
// readiness registered for this connection.
func (c *impl) HasPendingOutput() bool {
	return !c.out.isEmpty()
}
