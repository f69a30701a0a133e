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

// Package config carries the small typed configuration structs that
// build a socket.Server or socket.Client: network family, address,
// buffer sizing and idle timeout, plus the Unix-domain-socket file
// ownership knobs socket.NewServer applies after bind.
package config

import (
	"net"
	"os"

	libdur "github.com/nabbar/ngi/duration"
	libptc "github.com/nabbar/ngi/network/protocol"
)

// MaxGID is the largest group id accepted by Server.GroupPerm; Linux
// reserves the range above it.
const MaxGID int32 = 32767

// defaultBufferSize is what Client/Server bufferSize return when
// BufferSize is left at its zero value, matching conn.ReadChunkSize.
// Validate does not change BufferSize.
const defaultBufferSize = 8192

// Client configures a single outbound connection attempt handed to
// reactor.Connect or memtransport.Network.Connect.
type Client struct {
	Network     libptc.NetworkProtocol
	Address     string
	BufferSize  int
	IdleTimeout libdur.Duration
}

// Validate reports whether c names a supported protocol with an
// address that protocol can plausibly dial. It does not perform any
// I/O: a syntactically valid but unreachable address still validates.
func (c Client) Validate() error {
	if !c.Network.IsStream() && !c.Network.IsDatagram() {
		return ErrInvalidProtocol
	}

	if c.Network.IsUnix() {
		return nil
	}

	if c.Address == "" {
		return nil
	}

	if _, _, err := net.SplitHostPort(c.Address); err != nil {
		return ErrInvalidAddress
	}

	return nil
}

// bufferSize returns c.BufferSize, or defaultBufferSize if unset.
func (c Client) bufferSize() int {
	if c.BufferSize > 0 {
		return c.BufferSize
	}
	return defaultBufferSize
}

// Server configures a listener: a stream Listener, a UDP Listener, or
// (for NetworkUnix) a Unix-domain socket with file-ownership applied
// after bind.
type Server struct {
	Network     libptc.NetworkProtocol
	Address     string
	BufferSize  int
	IdleTimeout libdur.Duration

	// PermFile is the file mode applied to a Unix-domain socket path
	// after bind; ignored for every other protocol.
	PermFile os.FileMode

	// GroupPerm is the group id applied to a Unix-domain socket path
	// after bind via os.Chown. -1 leaves the group unchanged.
	GroupPerm int32
}

// Validate reports whether s names a supported protocol, a
// syntactically plausible address for it, and (for Unix sockets) a
// GroupPerm within the accepted range.
func (s Server) Validate() error {
	if !s.Network.IsStream() && !s.Network.IsDatagram() {
		return ErrInvalidProtocol
	}

	if s.Network.IsUnix() {
		if s.GroupPerm > MaxGID {
			return ErrInvalidGroup
		}
		return nil
	}

	if s.Address == "" {
		return nil
	}

	if _, _, err := net.SplitHostPort(s.Address); err != nil {
		return ErrInvalidAddress
	}

	return nil
}

// bufferSize returns s.BufferSize, or defaultBufferSize if unset.
func (s Server) bufferSize() int {
	if s.BufferSize > 0 {
		return s.BufferSize
	}
	return defaultBufferSize
}
