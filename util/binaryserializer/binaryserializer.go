package binaryserializer

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// maxItems is the number of buffers to keep in the free
// list to use for binary serialization and deserialization.
const maxItems = 1024

// binaryFreeList provides a free list of 8-byte buffers used while reading
// and writing the little-endian integers of the transaction wire format, so
// that parsing a transaction does not allocate per field.
var binaryFreeList = make(chan []byte, maxItems)

// Borrow returns a byte slice from the free list with a length of 8. A new
// buffer is allocated if there are not any available on the free list.
func Borrow() []byte {
	var buf []byte
	select {
	case buf = <-binaryFreeList:
	default:
		buf = make([]byte, 8)
	}
	return buf[:8]
}

// Return puts the provided byte slice back on the free list. The buffer MUST
// have been obtained via the Borrow function and therefore have a cap of 8.
func Return(buf []byte) {
	select {
	case binaryFreeList <- buf:
	default:
		// Let it go to the garbage collector.
	}
}

// readN fills a borrowed buffer with exactly size bytes from r and hands it
// to decode. io.EOF is reported as io.ErrUnexpectedEOF once at least one byte
// was consumed, following io.ReadFull.
func readN(r io.Reader, size int, decode func([]byte) uint64) (uint64, error) {
	buf := Borrow()
	defer Return(buf)
	if _, err := io.ReadFull(r, buf[:size]); err != nil {
		return 0, errors.WithStack(err)
	}
	return decode(buf[:size]), nil
}

// writeN encodes a value into a borrowed buffer of the given size and writes
// it to w.
func writeN(w io.Writer, size int, encode func([]byte)) error {
	buf := Borrow()
	defer Return(buf)
	encode(buf[:size])
	_, err := w.Write(buf[:size])
	return errors.WithStack(err)
}

// Uint8 reads a single byte from r.
func Uint8(r io.Reader) (uint8, error) {
	v, err := readN(r, 1, func(b []byte) uint64 { return uint64(b[0]) })
	return uint8(v), err
}

// Uint16 reads a little-endian uint16 from r.
func Uint16(r io.Reader) (uint16, error) {
	v, err := readN(r, 2, func(b []byte) uint64 { return uint64(binary.LittleEndian.Uint16(b)) })
	return uint16(v), err
}

// Uint32 reads a little-endian uint32 from r.
func Uint32(r io.Reader) (uint32, error) {
	v, err := readN(r, 4, func(b []byte) uint64 { return uint64(binary.LittleEndian.Uint32(b)) })
	return uint32(v), err
}

// Uint64 reads a little-endian uint64 from r.
func Uint64(r io.Reader) (uint64, error) {
	return readN(r, 8, binary.LittleEndian.Uint64)
}

// PutUint8 writes a single byte to w.
func PutUint8(w io.Writer, val uint8) error {
	return writeN(w, 1, func(b []byte) { b[0] = val })
}

// PutUint16 writes val to w as two little-endian bytes.
func PutUint16(w io.Writer, val uint16) error {
	return writeN(w, 2, func(b []byte) { binary.LittleEndian.PutUint16(b, val) })
}

// PutUint32 writes val to w as four little-endian bytes.
func PutUint32(w io.Writer, val uint32) error {
	return writeN(w, 4, func(b []byte) { binary.LittleEndian.PutUint32(b, val) })
}

// PutUint64 writes val to w as eight little-endian bytes.
func PutUint64(w io.Writer, val uint64) error {
	return writeN(w, 8, func(b []byte) { binary.LittleEndian.PutUint64(b, val) })
}

// ReadBytes reads exactly size bytes from r into a new slice.
func ReadBytes(r io.Reader, size uint64) ([]byte, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}
