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

package duration_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libdur "github.com/nabbar/ngi/duration"
)

var _ = Describe("Duration", func() {
	It("builds from the unit constructors", func() {
		Expect(libdur.Seconds(30).Time()).To(Equal(30 * time.Second))
		Expect(libdur.Minutes(2).Time()).To(Equal(2 * time.Minute))
		Expect(libdur.Hours(3).Time()).To(Equal(3 * time.Hour))
		Expect(libdur.Days(1).Time()).To(Equal(24 * time.Hour))
	})

	It("parses a plain time.Duration string", func() {
		d, err := libdur.Parse("90s")
		Expect(err).To(BeNil())
		Expect(d.Time()).To(Equal(90 * time.Second))
	})

	It("parses from a byte slice", func() {
		d, err := libdur.ParseByte([]byte("5m"))
		Expect(err).To(BeNil())
		Expect(d.Time()).To(Equal(5 * time.Minute))
	})

	It("rejects an invalid duration string", func() {
		_, err := libdur.Parse("not-a-duration")
		Expect(err).ToNot(BeNil())
	})

	It("formats sub-day durations like time.Duration", func() {
		Expect(libdur.Minutes(90).String()).To(Equal("1h30m0s"))
	})

	It("prefixes the day count and omits a zero remainder", func() {
		Expect(libdur.Days(2).String()).To(Equal("2d"))
	})

	It("prefixes the day count and keeps a non-zero remainder", func() {
		d := libdur.Days(1) + libdur.Hours(2)
		Expect(d.String()).To(Equal("1d2h0m0s"))
	})
})
