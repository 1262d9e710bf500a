// Package cityhash implements the 128-bit CityHash algorithm used as the
// frame checksum in the ClickHouse native wire format. No published Go
// module implements this exact variant (every ClickHouse Go client we've
// seen hand-rolls it too), so this is a from-scratch port of the public
// CityHash C++ algorithm, not a wrapper around a third-party package.
package cityhash

import "encoding/binary"

const (
	k0 = 0xc3a5c85c97cb3127
	k1 = 0xb492b66fbe98f273
	k2 = 0x9ae16a3b2f90404f
	k3 = 0xc949d7c7509e6557

	kMul = 0x9ddfea08eb382d69
)

// Uint128 is a 128-bit hash result, stored as two 64-bit halves.
type Uint128 struct {
	Low, High uint64
}

func fetch64(p []byte) uint64 { return binary.LittleEndian.Uint64(p) }
func fetch32(p []byte) uint32 { return binary.LittleEndian.Uint32(p) }

func rotate(val uint64, shift uint) uint64 {
	if shift == 0 {
		return val
	}
	return (val >> shift) | (val << (64 - shift))
}

func shiftMix(val uint64) uint64 {
	return val ^ (val >> 47)
}

func hashLen16Mul(u, v, mul uint64) uint64 {
	a := (u ^ v) * mul
	a ^= a >> 47
	b := (v ^ a) * mul
	b ^= b >> 47
	b *= mul
	return b
}

func hashLen16(u, v uint64) uint64 {
	return hashLen16Mul(u, v, kMul)
}

func hashLen0to16(s []byte) uint64 {
	length := uint64(len(s))
	if length > 8 {
		a := fetch64(s)
		b := fetch64(s[length-8:])
		return hashLen16(a, rotate(b+length, uint(length))) ^ b
	}
	if length >= 4 {
		a := uint64(fetch32(s))
		return hashLen16(length+(a<<3), uint64(fetch32(s[length-4:])))
	}
	if length > 0 {
		a := s[0]
		b := s[length>>1]
		c := s[length-1]
		y := uint32(a) + uint32(b)<<8
		z := uint32(length) + uint32(c)<<2
		return shiftMix(uint64(y)*k2^uint64(z)*k3) * k2
	}
	return k2
}

func hashLen17to32(s []byte) uint64 {
	length := uint64(len(s))
	mul := k2 + length*2
	a := fetch64(s) * k1
	b := fetch64(s[8:])
	c := fetch64(s[length-8:]) * mul
	d := fetch64(s[length-16:]) * k2
	return hashLen16Mul(rotate(a+b, 43)+rotate(c, 30)+d, a+rotate(b+k2, 18)+c, mul)
}

func weakHashLen32WithSeedsRaw(w, x, y, z, a, b uint64) (uint64, uint64) {
	a += w
	b = rotate(b+a+z, 21)
	c := a
	a += x
	a += y
	b += rotate(a, 44)
	return a + z, b + c
}

func weakHashLen32WithSeeds(s []byte, a, b uint64) (uint64, uint64) {
	return weakHashLen32WithSeedsRaw(fetch64(s), fetch64(s[8:]), fetch64(s[16:]), fetch64(s[24:]), a, b)
}

func hashLen33to64(s []byte) uint64 {
	length := uint64(len(s))
	mul := k2 + length*2
	a := fetch64(s) * k2
	b := fetch64(s[8:])
	c := fetch64(s[length-24:])
	d := fetch64(s[length-32:])
	e := fetch64(s[16:]) * k2
	f := fetch64(s[24:]) * 9
	g := fetch64(s[length-8:])
	h := fetch64(s[length-16:]) * mul

	u := rotate(a+g, 43) + (rotate(b, 30)+c)*9
	v := ((a + g) ^ d) + f + 1
	w := bswap64((u+v)*mul) + h
	x := rotate(e+f, 42) + c
	y := (bswap64((v+w)*mul) + g) * mul
	z := e + f + c
	a = bswap64((x+z)*mul+y) + b
	b = shiftMix((z+a)*mul+d+h) * mul
	return b + x
}

func bswap64(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return binary.BigEndian.Uint64(buf[:])
}

// Hash64 is the 64-bit CityHash of s.
func Hash64(s []byte) uint64 {
	length := len(s)
	switch {
	case length <= 16:
		return hashLen0to16(s)
	case length <= 32:
		return hashLen17to32(s)
	case length <= 64:
		return hashLen33to64(s)
	}

	n := uint64(length)
	x := fetch64(s[n-40:])
	y := fetch64(s[n-16:]) + fetch64(s[n-56:])
	z := hashLen16(fetch64(s[n-48:])+n, fetch64(s[n-24:]))

	vf, vs := weakHashLen32WithSeeds(s[n-64:], n, z)
	wf, ws := weakHashLen32WithSeeds(s[n-32:], y+k1, x)
	x = x*k1 + fetch64(s)

	remaining := (length - 1) &^ 63
	off := 0
	for remaining != 0 {
		chunk := s[off:]
		x = rotate(x+y+vf+fetch64(chunk[8:]), 37) * k1
		y = rotate(y+vs+fetch64(chunk[48:]), 42) * k1
		x ^= ws
		y += vf + fetch64(chunk[40:])
		z = rotate(z+wf, 33) * k1
		vf, vs = weakHashLen32WithSeeds(chunk, vs*k1, x+wf)
		wf, ws = weakHashLen32WithSeeds(chunk[32:], z+ws, y)
		z, x = x, z
		off += 64
		remaining -= 64
	}
	return hashLen16(hashLen16(vf, wf)+shiftMix(y)*k1+z, hashLen16(vs, ws)+x)
}

func cityMurmur(s []byte, seed Uint128) Uint128 {
	a := seed.Low
	b := seed.High
	var c, d uint64
	length := len(s)
	l := length - 16

	if l <= 0 {
		a = shiftMix(a*k1) * k1
		c = b*k1 + hashLen0to16(s)
		var e uint64
		if length >= 8 {
			e = fetch64(s)
		} else {
			e = c
		}
		d = shiftMix(a + e)
	} else {
		c = hashLen16(fetch64(s[length-8:])+k1, a)
		d = hashLen16(b+uint64(length), c+fetch64(s[length-16:]))
		a += d
		off := 0
		for l > 0 {
			chunk := s[off:]
			a ^= shiftMix(fetch64(chunk)*k1) * k1
			a *= k1
			b ^= a
			c ^= shiftMix(fetch64(chunk[8:])*k1) * k1
			c *= k1
			d ^= c
			off += 16
			l -= 16
		}
	}
	a = hashLen16(a, c)
	b = hashLen16(d, b)
	return Uint128{Low: a ^ b, High: hashLen16(b, a)}
}

// Hash128WithSeed is the 128-bit CityHash of s, seeded.
func Hash128WithSeed(s []byte, seed Uint128) Uint128 {
	if len(s) < 128 {
		return cityMurmur(s, seed)
	}

	x := seed.Low
	y := seed.High
	z := uint64(len(s)) * k1

	vf := rotate(y^k1, 49)*k1 + fetch64(s)
	vs := rotate(vf, 42)*k1 + fetch64(s[8:])
	wf := rotate(y+z, 35)*k1 + x
	ws := rotate(x+fetch64(s[88:]), 53) * k1

	off := 0
	remaining := len(s)
	step := func() {
		chunk := s[off:]
		x = rotate(x+y+vf+fetch64(chunk[16:]), 37) * k1
		y = rotate(y+vs+fetch64(chunk[48:]), 42) * k1
		x ^= ws
		y += vf + fetch64(chunk[40:])
		z = rotate(z+wf, 33) * k1
		vf, vs = weakHashLen32WithSeeds(chunk, vs*k1, x+wf)
		wf, ws = weakHashLen32WithSeeds(chunk[32:], z+ws, y)
		z, x = x, z
		off += 64
	}

	for remaining >= 128 {
		step()
		step()
		remaining -= 128
	}

	x += rotate(vf+z, 49) * k0
	y = y*k0 + rotate(ws, 37)
	z = z*k0 + rotate(wf, 27)
	wf *= 9
	vf *= k0

	tailStart := off
	tailLen := len(s) - tailStart
	for tailDone := 0; tailDone < tailLen; {
		tailDone += 32
		tailOff := tailStart + tailLen - tailDone
		y = rotate(x+y, 42)*k0 + vs
		wf += fetch64(s[tailOff+16:])
		x = x*k0 + wf
		z += ws + fetch64(s[tailOff:])
		ws += vf
		vf, vs = weakHashLen32WithSeeds(s[tailOff:], vf+z, vs)
		vf *= k0
	}

	x = hashLen16(x, vf)
	y = hashLen16(y+z, wf)
	return Uint128{
		Low:  hashLen16(x+vs, ws) + y,
		High: hashLen16(x+ws, y+vs),
	}
}

// Hash128 is the 128-bit CityHash of s with the library's default seed.
func Hash128(s []byte) Uint128 {
	if len(s) >= 16 {
		return Hash128WithSeed(s[16:], Uint128{Low: fetch64(s), High: fetch64(s[8:]) + k0})
	}
	return Hash128WithSeed(s, Uint128{Low: k0, High: k1})
}
