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

package errors

import "sync"

// UnknownMessage is returned for a code whose range owns no
// registered function at all.
const UnknownMessage = "unknown error"

// NullMessage is the empty message a package's getMessage switch
// returns for a code outside the cases it actually handles.
const NullMessage = ""

// rangeWidth is the span reserved per package by modules.go's
// MinPkgNGI* constants.
const rangeWidth = 100

var (
	mapMu   sync.RWMutex
	idMsgFct = make(map[CodeError]func(CodeError) string)
)

func rangeKey(code CodeError) CodeError {
	return (code / rangeWidth) * rangeWidth
}

// ExistInMapMessage reports whether code falls in an already
// registered range and that range's function yields a non-empty
// message for it. A package's init() calls this before registering
// to detect a collision with another package's range.
func ExistInMapMessage(code CodeError) bool {
	mapMu.RLock()
	fct, ok := idMsgFct[rangeKey(code)]
	mapMu.RUnlock()

	if !ok {
		return false
	}
	return fct(code) != NullMessage
}

// RegisterIdFctMessage registers fct as the message resolver for
// every code in the 100-wide range that minCode opens. Call it once
// per package from an init(), keyed by that package's MinPkgNGI*
// constant.
func RegisterIdFctMessage(minCode CodeError, fct func(CodeError) string) {
	mapMu.Lock()
	defer mapMu.Unlock()
	idMsgFct[rangeKey(minCode)] = fct
}

func lookupMessage(code CodeError) string {
	mapMu.RLock()
	fct, ok := idMsgFct[rangeKey(code)]
	mapMu.RUnlock()

	if !ok {
		return UnknownMessage
	}

	if m := fct(code); m != NullMessage {
		return m
	}
	return UnknownMessage
}
