package bitutil

import "testing"

func TestSwapUint16Slice(t *testing.T) {
	s := []uint16{0x1234, 0xABCD}
	SwapUint16Slice(s)
	want := []uint16{0x3412, 0xCDAB}
	for i := range s {
		if s[i] != want[i] {
			t.Fatalf("s[%d] = %#x, want %#x", i, s[i], want[i])
		}
	}
}

func TestSwapUint32Slice(t *testing.T) {
	s := []uint32{0x01020304}
	SwapUint32Slice(s)
	if s[0] != 0x04030201 {
		t.Fatalf("got %#x, want %#x", s[0], 0x04030201)
	}
}

func TestSwapUint64Slice(t *testing.T) {
	s := []uint64{0x0102030405060708}
	SwapUint64Slice(s)
	if s[0] != 0x0807060504030201 {
		t.Fatalf("got %#x, want %#x", s[0], 0x0807060504030201)
	}
}

func TestSwapUUIDHalves(t *testing.T) {
	b := make([]byte, 16)
	for i := range b {
		b[i] = byte(i)
	}
	SwapUUIDHalves(b)
	want := []byte{8, 9, 10, 11, 12, 13, 14, 15, 0, 1, 2, 3, 4, 5, 6, 7}
	for i := range b {
		if b[i] != want[i] {
			t.Fatalf("b[%d] = %d, want %d", i, b[i], want[i])
		}
	}
}

func TestUUIDToClickHouse(t *testing.T) {
	src := make([]byte, 16)
	for i := range src {
		src[i] = byte(i)
	}
	out := UUIDToClickHouse(src)
	want := [16]byte{8, 9, 10, 11, 12, 13, 14, 15, 0, 1, 2, 3, 4, 5, 6, 7}
	if out != want {
		t.Fatalf("got %v, want %v", out, want)
	}
	if src[0] != 0 {
		t.Fatalf("UUIDToClickHouse must not mutate src")
	}
}

func TestUUIDSliceToClickHouse(t *testing.T) {
	b := make([]byte, 32)
	for i := range b {
		b[i] = byte(i % 16)
	}
	UUIDSliceToClickHouse(b)
	first := [16]byte{8, 9, 10, 11, 12, 13, 14, 15, 0, 1, 2, 3, 4, 5, 6, 7}
	for i := 0; i < 16; i++ {
		if b[i] != first[i] {
			t.Fatalf("b[%d] = %d, want %d", i, b[i], first[i])
		}
		if b[16+i] != first[i] {
			t.Fatalf("b[%d] = %d, want %d", 16+i, b[16+i], first[i])
		}
	}
}

func TestSwapUUIDHalvesBadLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for wrong-length slice")
		}
	}()
	SwapUUIDHalves(make([]byte, 15))
}
