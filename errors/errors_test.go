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

package errors_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liberr "github.com/nabbar/ngi/errors"
)

const testCode liberr.CodeError = liberr.MinAvailable + 100

func init() {
	if !liberr.ExistInMapMessage(testCode) {
		liberr.RegisterIdFctMessage(testCode, func(code liberr.CodeError) string {
			switch code {
			case testCode:
				return "test error"
			}
			return liberr.NullMessage
		})
	}
}

var _ = Describe("CodeError", func() {
	It("resolves its registered message", func() {
		e := testCode.Error()
		Expect(e.Error()).To(Equal("test error"))
		Expect(e.Code()).To(Equal(uint16(testCode)))
	})

	It("falls back to UnknownMessage for an unregistered range", func() {
		var unregistered liberr.CodeError = liberr.MinAvailable + 9000
		Expect(unregistered.Error().Error()).To(Equal(liberr.UnknownMessage))
	})

	It("appends the wrapped cause to the message", func() {
		parent := fmt.Errorf("boom")
		e := testCode.Error(parent)
		Expect(e.Error()).To(Equal("test error: boom"))
		Expect(e.Unwrap()).To(ConsistOf(parent))
	})

	It("ignores nil parents", func() {
		e := testCode.Error(nil)
		Expect(e.Error()).To(Equal("test error"))
		Expect(e.Unwrap()).To(BeEmpty())
	})

	It("supports errors.Is through the wrapped cause", func() {
		sentinel := errors.New("sentinel")
		e := testCode.Error(sentinel)
		Expect(errors.Is(e, sentinel)).To(BeTrue())
	})

	It("formats a one-off message with Errorf", func() {
		e := testCode.Errorf("value %d out of range", 7)
		Expect(e.Error()).To(Equal("value 7 out of range"))
	})

	It("captures the call site that built it", func() {
		e := testCode.Error()
		Expect(e.GetTrace()).To(ContainSubstring("errors_test.go#"))
	})

	It("chains trace entries through a wrapped Error cause", func() {
		parent := testCode.Error()
		e := testCode.Error(parent)
		Expect(e.GetTraceSlice()).To(HaveLen(2))
		Expect(e.GetTraceSlice()[0]).To(ContainSubstring("errors_test.go#"))
		Expect(e.GetTraceSlice()[1]).To(ContainSubstring("errors_test.go#"))
	})
})
