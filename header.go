//  Copyright (c) 2014 Couchbase, Inc.

package cbor

import "encoding/binary"

// major is the top-3-bit type field of a CBOR header byte (spec.md §4.1).
// Naming and packing follow the teacher's cborType0..cborType7 constants.
type major byte

const (
	majorUint    major = 0 << 5 // unsigned integer
	majorNegInt  major = 1 << 5 // negative integer
	majorBytes   major = 2 << 5 // byte string
	majorText    major = 3 << 5 // text string
	majorArray   major = 4 << 5 // array
	majorMap     major = 5 << 5 // map
	majorTag     major = 6 << 5 // tagged data item
	majorSimple  major = 7 << 5 // floating-point, simple values and break
)

// info is the bottom-5-bit argument-shape field of a header byte.
const (
	infoImmediateMax byte = 23 // 0..23 carry the argument directly
	info1Byte        byte = 24 // 1 additional byte
	info2Byte        byte = 25 // 2 additional bytes
	info4Byte        byte = 26 // 4 additional bytes
	info8Byte        byte = 27 // 8 additional bytes
	infoReservedLo   byte = 28
	infoReservedHi   byte = 30
	infoIndefinite   byte = 31 // indefinite length (major 2..5) or break (major 7)
)

// simple-type codepoints under major 7.
const (
	simpleFalse     byte = 20
	simpleTrue      byte = 21
	simpleNull      byte = 22
	simpleUndefined byte = 23
	simpleByte      byte = 24 // extension byte carries the real code, 32..255
	simpleFloat16   byte = 25
	simpleFloat32   byte = 26
	simpleFloat64   byte = 27
	simpleBreak     byte = 31
)

var breakByte = header(majorSimple, simpleBreak)

func header(m major, info byte) byte {
	return byte(m) | (info & 0x1f)
}

func splitHeader(b byte) (major, byte) {
	return major(b & 0xe0), b & 0x1f
}

func isReservedInfo(info byte) bool {
	return info >= infoReservedLo && info <= infoReservedHi
}

// argumentWidth returns the number of trailing bytes (0, 1, 2, 4 or 8) that
// canonically encode n, per spec.md §4.1's shortest-encoding rule.
func argumentWidth(n uint64) int {
	switch {
	case n <= uint64(infoImmediateMax):
		return 0
	case n <= 0xff:
		return 1
	case n <= 0xffff:
		return 2
	case n <= 0xffffffff:
		return 4
	default:
		return 8
	}
}

// putArgument appends the header byte for (m, n) followed by whatever
// trailing argument bytes n's canonical width requires.
func putArgument(buf []byte, m major, n uint64) []byte {
	switch argumentWidth(n) {
	case 0:
		return append(buf, header(m, byte(n)))
	case 1:
		return append(buf, header(m, info1Byte), byte(n))
	case 2:
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(n))
		return append(append(buf, header(m, info2Byte)), b[:]...)
	case 4:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(n))
		return append(append(buf, header(m, info4Byte)), b[:]...)
	default:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], n)
		return append(append(buf, header(m, info8Byte)), b[:]...)
	}
}
