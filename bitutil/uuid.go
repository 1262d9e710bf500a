package bitutil

// UUIDLen is the byte length of a UUID value.
const UUIDLen = 16

// SwapUUIDHalves swaps the high 8 bytes and low 8 bytes of a 16-byte UUID
// in place. ClickHouse stores UUIDs as high64 followed by low64; Arrow (and
// RFC 4122 wire order) stores them byte-sequential, so every UUID crossing
// the boundary needs this swap in one direction or the other.
func SwapUUIDHalves(b []byte) {
	if len(b) != UUIDLen {
		panic("bitutil: SwapUUIDHalves requires a 16-byte slice")
	}
	for i := 0; i < 8; i++ {
		b[i], b[i+8] = b[i+8], b[i]
	}
}

// UUIDToClickHouse returns a new 16-byte array holding src with its halves
// swapped, leaving src untouched.
func UUIDToClickHouse(src []byte) [UUIDLen]byte {
	if len(src) != UUIDLen {
		panic("bitutil: UUIDToClickHouse requires a 16-byte slice")
	}
	var out [UUIDLen]byte
	copy(out[:8], src[8:])
	copy(out[8:], src[:8])
	return out
}

// UUIDSliceToClickHouse swaps halves of every 16-byte UUID packed back to
// back in b. len(b) must be a multiple of UUIDLen.
func UUIDSliceToClickHouse(b []byte) {
	if len(b)%UUIDLen != 0 {
		panic("bitutil: UUIDSliceToClickHouse requires a length multiple of 16")
	}
	for off := 0; off < len(b); off += UUIDLen {
		SwapUUIDHalves(b[off : off+UUIDLen])
	}
}
