package cmsgpack

import (
	"bytes"
	"testing"
)

// ==============================
// Integer range partitioning
// ==============================

func TestEncodeIntRanges(t *testing.T) {
	cases := []struct {
		n    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0xcc, 0x80}},
		{255, []byte{0xcc, 0xff}},
		{256, []byte{0xcd, 0x01, 0x00}},
		{65535, []byte{0xcd, 0xff, 0xff}},
		{65536, []byte{0xce, 0x00, 0x01, 0x00, 0x00}},
		{4294967295, []byte{0xce, 0xff, 0xff, 0xff, 0xff}},
		{4294967296, []byte{0xcf, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}},
		{-1, []byte{0xff}},
		{-32, []byte{0xe0}},
		{-33, []byte{0xd0, 0xdf}},
		{-128, []byte{0xd0, 0x80}},
		{-129, []byte{0xd1, 0xff, 0x7f}},
		{-32768, []byte{0xd1, 0x80, 0x00}},
		{-32769, []byte{0xd2, 0xff, 0xff, 0x7f, 0xff}},
		{-2147483648, []byte{0xd2, 0x80, 0x00, 0x00, 0x00}},
		{-2147483649, []byte{0xd3, 0xff, 0xff, 0xff, 0xff, 0x7f, 0xff, 0xff, 0xff}},
	}
	for _, c := range cases {
		got := Encode(IntNode(c.n))
		if !bytes.Equal(got, c.want) {
			t.Errorf("encode(%d) = % x, want % x", c.n, got, c.want)
		}
	}
}

func TestEncodeUintHighBit(t *testing.T) {
	// KindInt encodes through AsInt64, so 2^63 takes the int 64 form
	// with the same bit pattern.
	got := Encode(UintNode(1 << 63))
	want := []byte{0xd3, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("encode(uint 2^63) = % x, want % x", got, want)
	}
}

// ==============================
// Float downgrade
// ==============================

func TestEncodeFloatDowngrade(t *testing.T) {
	got := Encode(FloatNode(1.0))
	want := []byte{0xca, 0x3f, 0x80, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("encode(1.0) = % x, want % x", got, want)
	}
}

func TestEncodeFloatNoDowngrade(t *testing.T) {
	got := Encode(FloatNode(1.1))
	want := []byte{0xcb, 0x3f, 0xf1, 0x99, 0x99, 0x99, 0x99, 0x99, 0x9a}
	if !bytes.Equal(got, want) {
		t.Errorf("encode(1.1) = % x, want % x", got, want)
	}
}

// ==============================
// Container and composite scenarios (spec §8)
// ==============================

func TestEncodeArrayScenario(t *testing.T) {
	arr := NewArray()
	AddToArray(arr, IntNode(1))
	AddToArray(arr, StringNode("a"))
	AddToArray(arr, NilNode())

	got := Encode(arr)
	want := []byte{0x93, 0x01, 0xa1, 0x61, 0xc0}
	if !bytes.Equal(got, want) {
		t.Errorf("encode(array) = % x, want % x", got, want)
	}
}

func TestEncodeMapScenario(t *testing.T) {
	m := NewMap()
	AddToMap(m, "k", IntNode(42))

	got := Encode(m)
	want := []byte{0x81, 0xa1, 0x6b, 0x2a}
	if !bytes.Equal(got, want) {
		t.Errorf("encode(map) = % x, want % x", got, want)
	}
}

func TestEncodeExtFixLength(t *testing.T) {
	got := Encode(ExtNode(9, []byte{0x01, 0x02, 0x03, 0x04}))
	want := []byte{0xd6, 0x09, 0x01, 0x02, 0x03, 0x04}
	if !bytes.Equal(got, want) {
		t.Errorf("encode(fixext4) = % x, want % x", got, want)
	}
}

func TestEncodeExtNonPowerOfTwo(t *testing.T) {
	got := Encode(ExtNode(9, []byte{0xff, 0xee, 0xdd}))
	want := []byte{0xc7, 0x03, 0x09, 0xff, 0xee, 0xdd}
	if !bytes.Equal(got, want) {
		t.Errorf("encode(ext8) = % x, want % x", got, want)
	}
}

func TestEncodeStrLengths(t *testing.T) {
	if got := Encode(StringNode("")); !bytes.Equal(got, []byte{0xa0}) {
		t.Errorf("encode(\"\") = % x", got)
	}
	s32 := string(bytes.Repeat([]byte{'x'}, 32))
	got := Encode(StringNode(s32))
	if got[0] != 0xd9 || got[1] != 32 {
		t.Errorf("encode(32-byte str) header = % x, want d9 20", got[:2])
	}
}

func TestEncodeBlobNoShortForm(t *testing.T) {
	got := Encode(BlobNode([]byte{0x01}))
	want := []byte{0xc4, 0x01, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("encode(blob) = % x, want % x", got, want)
	}
}

func TestEncodeMultiValueStream(t *testing.T) {
	a := NilNode()
	b := BoolNode(true)
	c := IntNode(1)
	a.Next, b.Prev = b, a
	b.Next, c.Prev = c, b

	got := Encode(a)
	want := []byte{0xc0, 0xc3, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("encode(stream) = % x, want % x", got, want)
	}
}

func TestEncodeBoolNil(t *testing.T) {
	if got := Encode(NilNode()); !bytes.Equal(got, []byte{0xc0}) {
		t.Errorf("encode(nil) = % x", got)
	}
	if got := Encode(BoolNode(false)); !bytes.Equal(got, []byte{0xc2}) {
		t.Errorf("encode(false) = % x", got)
	}
	if got := Encode(BoolNode(true)); !bytes.Equal(got, []byte{0xc3}) {
		t.Errorf("encode(true) = % x", got)
	}
}
