/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package protocol enumerates the address families / socket kinds the
// reactor knows how to drive: stream (tcp, unix) and datagram (udp,
// unixgram) plus the raw ip variants used for address resolution.
package protocol

import (
	"strconv"
	"strings"
)

// NetworkProtocol identifies a socket network/address family, mirroring
// the first argument accepted by net.Dial / net.Listen.
type NetworkProtocol uint8

const (
	// NetworkEmpty is the zero value: no protocol selected.
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

var protocolNames = map[NetworkProtocol]string{
	NetworkUnix:     "unix",
	NetworkTCP:      "tcp",
	NetworkTCP4:     "tcp4",
	NetworkTCP6:     "tcp6",
	NetworkUDP:      "udp",
	NetworkUDP4:     "udp4",
	NetworkUDP6:     "udp6",
	NetworkIP:       "ip",
	NetworkIP4:      "ip4",
	NetworkIP6:      "ip6",
	NetworkUnixGram: "unixgram",
}

// Parse returns the NetworkProtocol matching s (case-insensitive,
// surrounding whitespace trimmed). It returns NetworkEmpty for any
// string that does not name a known protocol.
func Parse(s string) NetworkProtocol {
	s = strings.ToLower(strings.TrimSpace(s))

	for p, n := range protocolNames {
		if n == s {
			return p
		}
	}

	return NetworkEmpty
}

// String returns the canonical lowercase name of the protocol, or ""
// if the value does not name a known protocol.
func (p NetworkProtocol) String() string {
	return protocolNames[p]
}

// Code returns the string as accepted by net.Dial / net.Listen /
// net.ResolveTCPAddr and friends. It is presently identical to String.
func (p NetworkProtocol) Code() string {
	return p.String()
}

// Int returns the protocol as an int.
func (p NetworkProtocol) Int() int {
	return int(p)
}

// Int64 returns the protocol as an int64.
func (p NetworkProtocol) Int64() int64 {
	return int64(p)
}

// Uint returns the protocol as a uint.
func (p NetworkProtocol) Uint() uint {
	return uint(p)
}

// Uint64 returns the protocol as a uint64.
func (p NetworkProtocol) Uint64() uint64 {
	return uint64(p)
}

// IsStream reports whether the protocol is connection-oriented
// (tcp variants, unix). The reactor registers these with a Listener
// and a Connector; datagram protocols only ever get a UDP Listener
// or a pooled send socket.
func (p NetworkProtocol) IsStream() bool {
	switch p {
	case NetworkTCP, NetworkTCP4, NetworkTCP6, NetworkUnix:
		return true
	default:
		return false
	}
}

// IsDatagram reports whether the protocol is connectionless.
func (p NetworkProtocol) IsDatagram() bool {
	switch p {
	case NetworkUDP, NetworkUDP4, NetworkUDP6, NetworkUnixGram:
		return true
	default:
		return false
	}
}

// IsUnix reports whether the protocol addresses a filesystem path
// rather than an (host, port) pair.
func (p NetworkProtocol) IsUnix() bool {
	return p == NetworkUnix || p == NetworkUnixGram
}

// MarshalJSON implements json.Marshaler.
func (p NetworkProtocol) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *NetworkProtocol) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}

	*p = Parse(s)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p NetworkProtocol) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *NetworkProtocol) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	*p = Parse(s)
	return nil
}
