// Package ioformat persists kernel outputs to and from the flat,
// unframed binary/ASCII layouts described in spec §6.2 and reads the
// optional node-weight input of spec §6.3. Every binary field is written
// little-endian with no header and no length prefix; the reader is always
// told n (and, where relevant, k) up front, exactly as the writer side
// would have known it.
package ioformat

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
)

// ErrNegativeWeight is returned when a node-weight input contains a
// negative value (spec §6.3 forbids this).
var ErrNegativeWeight = errors.New("ioformat: node weight must be non-negative")

// ErrCountMismatch is returned when a caller-supplied slice's length does
// not match the expected element count for the format being written.
var ErrCountMismatch = errors.New("ioformat: slice length does not match expected element count")

// byteOrder is the single little-endian order every binary format in this
// package commits to (spec §6.2: "little-endian (implementation-defined;
// document and stick to one)").
var byteOrder = binary.LittleEndian

// bufSize matches the teacher corpus's buffered-reader convention of a
// generously sized fixed buffer rather than the bufio default.
const bufSize = 64 * 1024

func newWriter(w io.Writer) *bufio.Writer {
	return bufio.NewWriterSize(w, bufSize)
}

func newReader(r io.Reader) *bufio.Reader {
	return bufio.NewReaderSize(r, bufSize)
}
