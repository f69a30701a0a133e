/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package duration wraps time.Duration with days notation in its
// String form and a handful of constructors, so reactor/socket
// timeouts read as "2s" or "1d" instead of a raw int64 of
// nanoseconds. It carries none of the marshalling or viper-decoding
// machinery the rest of this module never reaches for a timeout.
package duration

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Duration time.Duration

// Parse parses a plain time.Duration string ("2h", "1500ms", ...).
func Parse(s string) (Duration, error) {
	s = strings.Replace(s, "\"", "", -1)
	s = strings.Replace(s, "'", "", -1)

	v, e := time.ParseDuration(s)
	if e != nil {
		return 0, e
	}
	return Duration(v), nil
}

// ParseByte is Parse for a byte slice, for callers decoding from a
// config file or wire buffer.
func ParseByte(p []byte) (Duration, error) {
	return Parse(string(p))
}

// Seconds returns a Duration representing i seconds.
func Seconds(i int64) Duration {
	return Duration(time.Duration(i) * time.Second)
}

// Minutes returns a Duration representing i minutes.
func Minutes(i int64) Duration {
	return Duration(time.Duration(i) * time.Minute)
}

// Hours returns a Duration representing i hours.
func Hours(i int64) Duration {
	return Duration(time.Duration(i) * time.Hour)
}

// Days returns a Duration representing i days of 24 hours each.
func Days(i int64) Duration {
	return Duration(time.Duration(i) * time.Hour * 24)
}

// Time returns the underlying time.Duration.
func (d Duration) Time() time.Duration {
	return time.Duration(d)
}

// DaysCount returns the number of whole 24h days in the duration.
func (d Duration) DaysCount() int64 {
	t := math.Floor(d.Time().Hours() / 24)
	if t > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(t)
}

// String renders the duration as "NdREST", omitting the day prefix
// when there are none.
func (d Duration) String() string {
	n := d.DaysCount()
	i := d.Time()

	if n <= 0 {
		return i.String()
	}

	i -= time.Duration(n) * 24 * time.Hour
	s := fmt.Sprintf("%dd", n)
	if i > 0 {
		s += i.String()
	}
	return s
}
