// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import "golang.org/x/text/encoding/unicode"

// decodeUTF16 decodes a little-endian UTF-16 byte run with no trailing NUL.
// Grounded on saferwall/pe's DecodeUTF16String, which decodes UTF-16
// version-resource strings the same way; here it decodes class/selector
// names emitted by a Windows-hosted, cross-compiled front end (see
// moduleFlagWideNames in wire.go).
func decodeUTF16(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	s, err := decoder.Bytes(b)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// encodeUTF16LE is decodeUTF16's inverse, used only by ImageBuilder to
// produce wide-name fixtures for tests.
func encodeUTF16LE(s string) []byte {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	b, err := encoder.Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return b
}
