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

import (
	"fmt"
	"runtime"
	"strings"
)

const pathSeparator = "/"
const pathMod = "/pkg/mod/"

// frame is the call site captured when an Error is built: one
// file/line pair, not the teacher's full vendor-aware multi-frame
// walk — nothing in this module inspects more than the origin of a
// coded error.
type frame struct {
	file string
	line int
}

// getFrame walks the caller stack past this file's own functions and
// returns the first frame outside the errors package: the CodeError
// method or New/Errorf call site that actually produced the Error.
func getFrame() frame {
	var pcs [16]uintptr
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return frame{}
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		fr, more := frames.Next()
		if !strings.Contains(fr.Function, "nabbar/ngi/errors.") {
			return frame{file: fr.File, line: fr.Line}
		}
		if !more {
			return frame{}
		}
	}
}

// filterPath trims a captured file path down to the part below
// Go's module cache root, so a trace reads as
// "github.com/nabbar/ngi/reactor/reactor.go#217" instead of a local
// absolute path baked in at build time.
func filterPath(pathname string) string {
	if i := strings.LastIndex(pathname, pathMod); i != -1 {
		pathname = pathname[i+len(pathMod):]
		if j := strings.Index(pathname, "@"); j != -1 {
			if k := strings.Index(pathname[j:], pathSeparator); k != -1 {
				pathname = pathname[:j] + pathname[j+k:]
			}
		}
	}
	return pathname
}

func (f frame) String() string {
	if f.file == "" {
		return ""
	}
	return fmt.Sprintf("%s#%d", filterPath(f.file), f.line)
}
