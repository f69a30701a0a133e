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
	"fmt"
	"net"
	"strconv"

	"golang.org/x/sys/unix"
)

// resolveTCP4 parses "host:port" (host may be empty for all
// interfaces) into a unix.SockaddrInet4, resolving host via the
// standard resolver so DNS names work for Connect as well as Listen.
func resolveTCP4(hostport string) (*unix.SockaddrInet4, error) {
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return nil, err
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	var ip net.IP
	if host == "" {
		ip = net.IPv4zero
	} else {
		ips, rerr := net.DefaultResolver.LookupIP(context.Background(), "ip4", host)
		if rerr != nil || len(ips) == 0 {
			return nil, fmt.Errorf("cannot resolve %q: %w", host, rerr)
		}
		ip = ips[0]
	}

	sa := &unix.SockaddrInet4{Port: port}
	copy(sa.Addr[:], ip.To4())
	return sa, nil
}

// sockaddrString renders a unix.Sockaddr as "host:port" (TCP) or a
// bare path (unix-domain), matching the Address shape callers expect
// back from Listener.Address / Connection.PeerAddress.
func sockaddrString(sa unix.Sockaddr) string {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		ip := net.IP(a.Addr[:])
		return net.JoinHostPort(ip.String(), strconv.Itoa(a.Port))
	case *unix.SockaddrInet6:
		ip := net.IP(a.Addr[:])
		return net.JoinHostPort(ip.String(), strconv.Itoa(a.Port))
	case *unix.SockaddrUnix:
		return a.Name
	default:
		return ""
	}
}
