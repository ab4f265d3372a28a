package cmsgpack

import "math"

// Decode walks b from the start, decoding one or more complete
// top-level MessagePack values with no framing between them (a
// "stream" per spec §4.4). On success it returns the head of a sibling
// chain of count decoded values. On failure it returns a nil tree, a
// negative count is not used in Go's idiomatic error style — instead
// a non-nil error is returned and the tree is nil; the caller never
// observes a partially built tree, since nothing keeps it reachable
// past this call.
func Decode(b []byte) (*Node, int, error) {
	c := newCursor(b)
	var head, tail *Node
	count := 0
	for c.remaining() > 0 {
		n := decodeValue(c)
		if c.err != nil {
			return nil, 0, &DecodeError{Offset: c.pos, Tag: tagAt(c), Err: c.err}
		}
		if head == nil {
			head = n
		} else {
			tail.Next = n
			n.Prev = tail
		}
		tail = n
		count++
	}
	return head, count, nil
}

func tagAt(c *cursor) byte {
	if c.pos < len(c.b) {
		return c.b[c.pos]
	}
	return 0
}

func decodeValue(c *cursor) *Node {
	if !c.need(1) {
		return &Node{}
	}
	tag := c.byte0()

	switch tag {
	case 0xc0: // nil
		c.consume(1)
		return &Node{Kind: KindNil}
	case 0xc2, 0xc3: // false, true
		c.consume(1)
		return &Node{Kind: KindBool, boolVal: tag == 0xc3}
	case 0xcc: // uint 8
		if !c.need(2) {
			return &Node{}
		}
		v := uint64(c.peekAt(1))
		c.consume(2)
		return &Node{Kind: KindInt, Uint: v, unsigned: true}
	case 0xcd: // uint 16
		if !c.need(3) {
			return &Node{}
		}
		v := beUint16(c.slice(3)[1:3])
		c.consume(3)
		return &Node{Kind: KindInt, Uint: uint64(v), unsigned: true}
	case 0xce: // uint 32
		if !c.need(5) {
			return &Node{}
		}
		v := beUint32(c.slice(5)[1:5])
		c.consume(5)
		return &Node{Kind: KindInt, Uint: uint64(v), unsigned: true}
	case 0xcf: // uint 64
		if !c.need(9) {
			return &Node{}
		}
		v := beUint64(c.slice(9)[1:9])
		c.consume(9)
		return &Node{Kind: KindInt, Uint: v, unsigned: true}
	case 0xd0: // int 8
		if !c.need(2) {
			return &Node{}
		}
		v := int64(int8(c.peekAt(1)))
		c.consume(2)
		return &Node{Kind: KindInt, Int: v}
	case 0xd1: // int 16
		if !c.need(3) {
			return &Node{}
		}
		v := int64(int16(beUint16(c.slice(3)[1:3])))
		c.consume(3)
		return &Node{Kind: KindInt, Int: v}
	case 0xd2: // int 32
		if !c.need(5) {
			return &Node{}
		}
		v := int64(int32(beUint32(c.slice(5)[1:5])))
		c.consume(5)
		return &Node{Kind: KindInt, Int: v}
	case 0xd3: // int 64
		if !c.need(9) {
			return &Node{}
		}
		v := int64(beUint64(c.slice(9)[1:9]))
		c.consume(9)
		return &Node{Kind: KindInt, Int: v}
	case 0xca: // float 32
		if !c.need(5) {
			return &Node{}
		}
		bits := beUint32(c.slice(5)[1:5])
		c.consume(5)
		return &Node{Kind: KindFloat, Float: float64(math.Float32frombits(bits))}
	case 0xcb: // float 64
		if !c.need(9) {
			return &Node{}
		}
		bits := beUint64(c.slice(9)[1:9])
		c.consume(9)
		return &Node{Kind: KindFloat, Float: math.Float64frombits(bits)}
	case 0xd4, 0xd5, 0xd6, 0xd7, 0xd8: // fixext 1/2/4/8/16
		if !c.need(2) {
			return &Node{}
		}
		l := 1 << (tag - 0xd4)
		etype := c.peekAt(1)
		if !c.need(2 + l) {
			return &Node{}
		}
		data := append([]byte(nil), c.slice(2+l)[2:2+l]...)
		c.consume(2 + l)
		return &Node{Kind: KindExt, Etype: etype, Payload: data}
	case 0xc4, 0xd9: // bin 8, str 8
		if !c.need(2) {
			return &Node{}
		}
		l := int(c.peekAt(1))
		if !c.need(2 + l) {
			return &Node{}
		}
		data := append([]byte(nil), c.slice(2+l)[2:2+l]...)
		c.consume(2 + l)
		return &Node{Kind: strOrBlob(tag), Payload: data}
	case 0xc5, 0xda: // bin 16, str 16
		if !c.need(3) {
			return &Node{}
		}
		l := int(beUint16(c.slice(3)[1:3]))
		if !c.need(3 + l) {
			return &Node{}
		}
		data := append([]byte(nil), c.slice(3+l)[3:3+l]...)
		c.consume(3 + l)
		return &Node{Kind: strOrBlob(tag), Payload: data}
	case 0xc6, 0xdb: // bin 32, str 32
		if !c.need(5) {
			return &Node{}
		}
		l := int(beUint32(c.slice(5)[1:5]))
		if !c.need(5 + l) {
			return &Node{}
		}
		data := append([]byte(nil), c.slice(5+l)[5:5+l]...)
		c.consume(5 + l)
		return &Node{Kind: strOrBlob(tag), Payload: data}
	case 0xc7: // ext 8
		if !c.need(3) {
			return &Node{}
		}
		l := int(c.peekAt(1))
		etype := c.peekAt(2)
		if !c.need(3 + l) {
			return &Node{}
		}
		data := append([]byte(nil), c.slice(3+l)[3:3+l]...)
		c.consume(3 + l)
		return &Node{Kind: KindExt, Etype: etype, Payload: data}
	case 0xc8: // ext 16
		if !c.need(4) {
			return &Node{}
		}
		l := int(beUint16(c.slice(4)[1:3]))
		etype := c.peekAt(3)
		if !c.need(4 + l) {
			return &Node{}
		}
		data := append([]byte(nil), c.slice(4+l)[4:4+l]...)
		c.consume(4 + l)
		return &Node{Kind: KindExt, Etype: etype, Payload: data}
	case 0xc9: // ext 32
		if !c.need(6) {
			return &Node{}
		}
		l := int(beUint32(c.slice(6)[1:5]))
		etype := c.peekAt(5)
		if !c.need(6 + l) {
			return &Node{}
		}
		data := append([]byte(nil), c.slice(6+l)[6:6+l]...)
		c.consume(6 + l)
		return &Node{Kind: KindExt, Etype: etype, Payload: data}
	case 0xdc: // array 16
		if !c.need(3) {
			return &Node{}
		}
		l := int(beUint16(c.slice(3)[1:3]))
		c.consume(3)
		return decodeArray(c, l)
	case 0xdd: // array 32
		if !c.need(5) {
			return &Node{}
		}
		l := int(beUint32(c.slice(5)[1:5]))
		c.consume(5)
		return decodeArray(c, l)
	case 0xde: // map 16
		if !c.need(3) {
			return &Node{}
		}
		l := int(beUint16(c.slice(3)[1:3]))
		c.consume(3)
		return decodeHash(c, l)
	case 0xdf: // map 32
		if !c.need(5) {
			return &Node{}
		}
		l := int(beUint32(c.slice(5)[1:5]))
		c.consume(5)
		return decodeHash(c, l)
	}

	switch {
	case tag&0x80 == 0: // positive fixint
		c.consume(1)
		return &Node{Kind: KindInt, Int: int64(tag)}
	case tag&0xe0 == 0xe0: // negative fixint
		c.consume(1)
		return &Node{Kind: KindInt, Int: int64(int8(tag))}
	case tag&0xe0 == 0xa0: // fixstr
		l := int(tag & 0x1f)
		if !c.need(1 + l) {
			return &Node{}
		}
		data := append([]byte(nil), c.slice(1+l)[1:1+l]...)
		c.consume(1 + l)
		return &Node{Kind: KindStr, Payload: data}
	case tag&0xf0 == 0x90: // fixarray
		l := int(tag & 0xf)
		c.consume(1)
		return decodeArray(c, l)
	case tag&0xf0 == 0x80: // fixmap
		l := int(tag & 0xf)
		c.consume(1)
		return decodeHash(c, l)
	default:
		c.fail(ErrBadFormat)
		return &Node{}
	}
}

// strOrBlob distinguishes Str from Blob using bit 0x10 of the shared
// bin/str tag nibble, per spec §6: d9/da/db set it, c4/c5/c6 clear it.
func strOrBlob(tag byte) Kind {
	if tag&0x10 != 0 {
		return KindStr
	}
	return KindBlob
}

func decodeArray(c *cursor, l int) *Node {
	n := &Node{Kind: KindArray}
	if l == 0 {
		return n
	}
	head := decodeValue(c)
	if c.err != nil {
		return n
	}
	n.Child = head
	tail := head
	for i := 1; i < l; i++ {
		item := decodeValue(c)
		if c.err != nil {
			return n
		}
		tail.Next = item
		item.Prev = tail
		tail = item
	}
	return n
}

func decodeHash(c *cursor, l int) *Node {
	n := &Node{Kind: KindMap}
	if l == 0 {
		return n
	}
	key := decodeValue(c)
	if c.err != nil {
		return n
	}
	val := decodeValue(c)
	if c.err != nil {
		return n
	}
	val.Key = key
	n.Child = val
	tail := val
	for i := 1; i < l; i++ {
		k2 := decodeValue(c)
		if c.err != nil {
			return n
		}
		v2 := decodeValue(c)
		if c.err != nil {
			return n
		}
		v2.Key = k2
		tail.Next = v2
		v2.Prev = tail
		tail = v2
	}
	return n
}

func beUint16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func beUint64(b []byte) uint64 {
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
}
