package binaryserializer

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
)

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := PutUint8(&buf, 0xab); err != nil {
		t.Fatalf("PutUint8: %s", err)
	}
	if err := PutUint16(&buf, 0x0102); err != nil {
		t.Fatalf("PutUint16: %s", err)
	}
	if err := PutUint32(&buf, 0xfffffffe); err != nil {
		t.Fatalf("PutUint32: %s", err)
	}
	if err := PutUint64(&buf, 0x0102030405060708); err != nil {
		t.Fatalf("PutUint64: %s", err)
	}

	want := []byte{
		0xab,
		0x02, 0x01,
		0xfe, 0xff, 0xff, 0xff,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("serialized bytes: got %x want %x", buf.Bytes(), want)
	}

	r := bytes.NewReader(buf.Bytes())
	u8, err := Uint8(r)
	if err != nil || u8 != 0xab {
		t.Errorf("Uint8: got %x, %v", u8, err)
	}
	u16, err := Uint16(r)
	if err != nil || u16 != 0x0102 {
		t.Errorf("Uint16: got %x, %v", u16, err)
	}
	u32, err := Uint32(r)
	if err != nil || u32 != 0xfffffffe {
		t.Errorf("Uint32: got %x, %v", u32, err)
	}
	u64, err := Uint64(r)
	if err != nil || u64 != 0x0102030405060708 {
		t.Errorf("Uint64: got %x, %v", u64, err)
	}
}

func TestShortReads(t *testing.T) {
	_, err := Uint32(bytes.NewReader([]byte{0x01, 0x02}))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Uint32: got %v want io.ErrUnexpectedEOF", err)
	}
	_, err = Uint8(bytes.NewReader(nil))
	if !errors.Is(err, io.EOF) {
		t.Errorf("Uint8: got %v want io.EOF", err)
	}
	_, err = ReadBytes(bytes.NewReader([]byte{0x01}), 2)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadBytes: got %v want io.ErrUnexpectedEOF", err)
	}
}
