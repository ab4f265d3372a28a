package cmsgpack

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// Encode walks root and every one of its Next siblings, appending the
// wire bytes for each to a fresh Buffer, then returns the detached
// result. Passing a single top-level value encodes just that value;
// passing the head of a sibling chain encodes a multi-value stream with
// no framing between values, matching Decode's own stream semantics.
//
// Encode never fails on a well-formed tree (see spec §7): malformed
// trees (e.g. a KindArray node with a non-nil Key on a child) are a
// caller bug, not a recoverable input, and are not defended against
// here.
func Encode(root *Node) []byte {
	var buf Buffer
	for n := root; n != nil; n = n.Next {
		encodeValue(&buf, n)
	}
	return buf.Detach()
}

func encodeValue(buf *Buffer, n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindNil:
		buf.AppendByte(0xc0)
	case KindBool:
		if n.boolVal {
			buf.AppendByte(0xc3)
		} else {
			buf.AppendByte(0xc2)
		}
	case KindInt:
		// Always widens through the signed slot: a Uint magnitude >= 2^63
		// re-encodes via the signed ranges below, so Unsigned() is not
		// preserved across an encode/decode round trip at that magnitude.
		encodeInt(buf, n.AsInt64())
	case KindFloat:
		encodeFloat(buf, n.Float)
	case KindStr:
		encodeStr(buf, n.Payload)
	case KindBlob:
		encodeBlob(buf, n.Payload)
	case KindExt:
		encodeExt(buf, n.Etype, n.Payload)
	case KindArray:
		encodeArrayHeader(buf, Size(n))
		for c := n.Child; c != nil; c = c.Next {
			encodeValue(buf, c)
		}
	case KindMap:
		encodeMapHeader(buf, Size(n))
		for c := n.Child; c != nil; c = c.Next {
			encodeValue(buf, c.Key)
			encodeValue(buf, c)
		}
	}
}

// encodeInt emits the shortest representation covering n, per spec §4.3.
func encodeInt(buf *Buffer, n int64) {
	var hdr [9]byte
	switch {
	case n >= 0 && n <= 127:
		buf.AppendByte(byte(n))
		return
	case n >= 128 && n <= 0xff:
		hdr[0], hdr[1] = 0xcc, byte(n)
		buf.Append(hdr[:2])
		return
	case n >= 256 && n <= 0xffff:
		hdr[0] = 0xcd
		binary.BigEndian.PutUint16(hdr[1:3], uint16(n))
		buf.Append(hdr[:3])
		return
	case n >= 65536 && n <= math.MaxUint32:
		hdr[0] = 0xce
		binary.BigEndian.PutUint32(hdr[1:5], uint32(n))
		buf.Append(hdr[:5])
		return
	case n >= 4294967296:
		hdr[0] = 0xcf
		binary.BigEndian.PutUint64(hdr[1:9], uint64(n))
		buf.Append(hdr[:9])
		return
	case n >= -32 && n <= -1:
		buf.AppendByte(byte(int8(n)))
		return
	case n >= -128 && n <= -33:
		hdr[0], hdr[1] = 0xd0, byte(int8(n))
		buf.Append(hdr[:2])
		return
	case n >= -32768 && n <= -129:
		hdr[0] = 0xd1
		binary.BigEndian.PutUint16(hdr[1:3], uint16(int16(n)))
		buf.Append(hdr[:3])
		return
	case n >= math.MinInt32 && n <= -32769:
		hdr[0] = 0xd2
		binary.BigEndian.PutUint32(hdr[1:5], uint32(int32(n)))
		buf.Append(hdr[:5])
		return
	default: // n < math.MinInt32
		hdr[0] = 0xd3
		binary.BigEndian.PutUint64(hdr[1:9], uint64(n))
		buf.Append(hdr[:9])
		return
	}
}

// encodeFloat implements the value-sensitive fits-in-float downgrade:
// a double that round-trips exactly through float32 is emitted as a
// 5-byte float payload; otherwise the full 9-byte double is emitted.
func encodeFloat(buf *Buffer, d float64) {
	f := float32(d)
	if float64(f) == d {
		var hdr [5]byte
		hdr[0] = 0xca
		binary.BigEndian.PutUint32(hdr[1:5], math.Float32bits(f))
		buf.Append(hdr[:])
		return
	}
	var hdr [9]byte
	hdr[0] = 0xcb
	binary.BigEndian.PutUint64(hdr[1:9], math.Float64bits(d))
	buf.Append(hdr[:])
}

func encodeStr(buf *Buffer, s []byte) {
	l := len(s)
	switch {
	case l < 32:
		buf.AppendByte(0xa0 | byte(l))
	case l <= 0xff:
		buf.Append([]byte{0xd9, byte(l)})
	case l <= 0xffff:
		var hdr [3]byte
		hdr[0] = 0xda
		binary.BigEndian.PutUint16(hdr[1:3], uint16(l))
		buf.Append(hdr[:])
	default:
		var hdr [5]byte
		hdr[0] = 0xdb
		binary.BigEndian.PutUint32(hdr[1:5], uint32(l))
		buf.Append(hdr[:])
	}
	buf.Append(s)
}

func encodeBlob(buf *Buffer, b []byte) {
	l := len(b)
	switch {
	case l <= 0xff:
		buf.Append([]byte{0xc4, byte(l)})
	case l <= 0xffff:
		var hdr [3]byte
		hdr[0] = 0xc5
		binary.BigEndian.PutUint16(hdr[1:3], uint16(l))
		buf.Append(hdr[:])
	default:
		var hdr [5]byte
		hdr[0] = 0xc6
		binary.BigEndian.PutUint32(hdr[1:5], uint32(l))
		buf.Append(hdr[:])
	}
	buf.Append(b)
}

func encodeExt(buf *Buffer, etype uint8, data []byte) {
	l := len(data)
	if l <= 16 && l > 0 && bits.OnesCount(uint(l)) == 1 {
		buf.Append([]byte{0xd4 + byte(bits.TrailingZeros(uint(l))), etype})
		buf.Append(data)
		return
	}
	switch {
	case l <= 0xff:
		buf.Append([]byte{0xc7, byte(l), etype})
	case l <= 0xffff:
		var hdr [4]byte
		hdr[0] = 0xc8
		binary.BigEndian.PutUint16(hdr[1:3], uint16(l))
		hdr[3] = etype
		buf.Append(hdr[:])
	default:
		var hdr [6]byte
		hdr[0] = 0xc9
		binary.BigEndian.PutUint32(hdr[1:5], uint32(l))
		hdr[5] = etype
		buf.Append(hdr[:])
	}
	buf.Append(data)
}

func encodeArrayHeader(buf *Buffer, n int) {
	switch {
	case n <= 15:
		buf.AppendByte(0x90 | byte(n))
	case n <= 0xffff:
		var hdr [3]byte
		hdr[0] = 0xdc
		binary.BigEndian.PutUint16(hdr[1:3], uint16(n))
		buf.Append(hdr[:])
	default:
		var hdr [5]byte
		hdr[0] = 0xdd
		binary.BigEndian.PutUint32(hdr[1:5], uint32(n))
		buf.Append(hdr[:])
	}
}

func encodeMapHeader(buf *Buffer, n int) {
	switch {
	case n <= 15:
		buf.AppendByte(0x80 | byte(n))
	case n <= 0xffff:
		var hdr [3]byte
		hdr[0] = 0xde
		binary.BigEndian.PutUint16(hdr[1:3], uint16(n))
		buf.Append(hdr[:])
	default:
		var hdr [5]byte
		hdr[0] = 0xdf
		binary.BigEndian.PutUint32(hdr[1:5], uint32(n))
		buf.Append(hdr[:])
	}
}
