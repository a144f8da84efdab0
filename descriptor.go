// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

import (
	"bytes"
	"encoding/binary"
)

// imageReader is the bounds-checked byte-slice reader every descriptor view
// is built on. It never panics on a short read; every accessor returns
// ErrOutsideBoundary instead, the same discipline saferwall/pe's
// ReadUint32/ReadUint16/structUnpack apply to a memory-mapped PE image.
type imageReader struct {
	data []byte
	size uint32
}

func newImageReader(data []byte) *imageReader {
	return &imageReader{data: data, size: uint32(len(data))}
}

func (r *imageReader) readUint32(offset uint32) (uint32, error) {
	if offset > r.size || r.size-offset < 4 {
		return 0, ErrOutsideBoundary
	}
	return binary.LittleEndian.Uint32(r.data[offset:]), nil
}

func (r *imageReader) readInt32(offset uint32) (int32, error) {
	v, err := r.readUint32(offset)
	return int32(v), err
}

func (r *imageReader) readUint16(offset uint32) (uint16, error) {
	if offset > r.size || r.size-offset < 2 {
		return 0, ErrOutsideBoundary
	}
	return binary.LittleEndian.Uint16(r.data[offset:]), nil
}

// bytesAt returns a non-owning slice into the backing image; it aliases the
// mapped memory rather than copying it, per the descriptor-view contract.
func (r *imageReader) bytesAt(offset, size uint32) ([]byte, error) {
	total := offset + size
	if (total > offset) != (size > 0) {
		return nil, ErrOutsideBoundary
	}
	if offset > r.size || total > r.size {
		return nil, ErrOutsideBoundary
	}
	return r.data[offset:total], nil
}

// structUnpack decodes a fixed-size little-endian struct at offset, exactly
// as saferwall/pe's structUnpack does for PE header structures.
func (r *imageReader) structUnpack(v interface{}, offset, size uint32) error {
	raw, err := r.bytesAt(offset, size)
	if err != nil {
		return err
	}
	return binary.Read(bytes.NewReader(raw), binary.LittleEndian, v)
}

// readCString reads a NUL-terminated byte run starting at offset and
// returns it decoded as a Go string. An offset of 0 means "no name" and
// yields "" with no error, matching the selector-refs terminator and
// optional-name conventions used throughout the wire format.
func (r *imageReader) readCString(offset uint32) (string, error) {
	if offset == 0 {
		return "", nil
	}
	if offset >= r.size {
		return "", ErrOutsideBoundary
	}
	end := offset
	for end < r.size && r.data[end] != 0 {
		end++
	}
	if end >= r.size {
		return "", ErrOutsideBoundary
	}
	return string(r.data[offset:end]), nil
}

// readWideCString reads a UTF-16LE, NUL-terminated name. Used only when a
// module's wide-name flag is set (see decodeName in module.go).
func (r *imageReader) readWideCString(offset uint32) (string, error) {
	if offset == 0 {
		return "", nil
	}
	end := offset
	for {
		if end+1 >= r.size {
			return "", ErrOutsideBoundary
		}
		if r.data[end] == 0 && r.data[end+1] == 0 {
			break
		}
		end += 2
	}
	s, err := decodeUTF16(r.data[offset:end])
	if err != nil {
		return "", err
	}
	return s, nil
}
