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

package protocol

import (
	"reflect"
)

// ViperDecoderHook returns a mapstructure/viper decode hook that parses
// a NetworkProtocol from a string or any integer kind, so that reactor
// config structs can bind a "protocol: tcp" key straight from viper.
func ViperDecoderHook() func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	target := reflect.TypeOf(NetworkEmpty)

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != target {
			return data, nil
		}

		switch from.Kind() {
		case reflect.String:
			return Parse(data.(string)), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return NetworkProtocol(reflect.ValueOf(data).Int()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return NetworkProtocol(reflect.ValueOf(data).Uint()), nil
		default:
			return data, nil
		}
	}
}
