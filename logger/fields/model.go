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

package fields

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type fldModel struct {
	m sync.Map
}

func newModel(_ context.Context) *fldModel {
	return &fldModel{}
}

func (o *fldModel) Add(key string, val interface{}) Fields {
	o.m.Store(key, val)
	return o
}

func (o *fldModel) LoadAndDelete(key string) (interface{}, bool) {
	return o.m.LoadAndDelete(key)
}

func (o *fldModel) Map(fct func(key string, val interface{}) interface{}) Fields {
	o.m.Range(func(key, val any) bool {
		o.m.Store(key, fct(key.(string), val))
		return true
	})
	return o
}

func (o *fldModel) Logrus() logrus.Fields {
	res := make(logrus.Fields)

	o.m.Range(func(key, val any) bool {
		res[key.(string)] = val
		return true
	})

	return res
}
