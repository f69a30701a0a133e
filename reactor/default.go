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
	"sync"
	"sync/atomic"

	liblog "github.com/nabbar/ngi/logger"
)

var (
	defaultMu  sync.Mutex
	defaultPtr atomic.Pointer[Reactor]
)

// Default returns the process-wide Reactor, creating it lazily on
// first use. Its selector goroutine starts and stops the same way any
// other Reactor's does: on first registration, and once the
// registered set (connections, listeners, pending connects, UDP
// listeners) drains back to empty.
func Default() *Reactor {
	if r := defaultPtr.Load(); r != nil {
		return r
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if r := defaultPtr.Load(); r != nil {
		return r
	}

	r := New(liblog.New(context.Background()))
	defaultPtr.Store(r)
	return r
}
