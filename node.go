package cmsgpack

// Kind discriminates the shape of a Node's value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindBlob
	KindExt
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindBlob:
		return "blob"
	case KindExt:
		return "ext"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Node is a single MessagePack value in the tree: a decoded value, or
// one constructed by application code.
//
// A Node exclusively owns its Payload and every Node reachable via
// Child, Key, or Next. Prev is a back-reference and never owns. Sibling
// chains (Child/Next and top-level decode results) are acyclic; the
// head has Prev == nil and the tail has Next == nil.
//
// If Kind == KindArray, every child has Key == nil. If Kind == KindMap,
// every child has Key != nil, and the key node's own Key is nil.
//
// An Int node stores its magnitude in exactly one of Int or Uint: the
// decoder populates Uint when it read a format in the unsigned family
// (uint8/16/32/64) and Int when it read the signed family
// (int8/16/32/64) or a positive or negative fixint. This mirrors the reference
// union's asymmetry (see spec §9) rather than normalizing both families
// into one field.
type Node struct {
	Kind  Kind
	Etype uint8 // meaningful only when Kind == KindExt

	Payload []byte // owned; meaningful for KindStr, KindBlob, KindExt

	Int      int64
	Uint     uint64
	unsigned bool // selects Int vs Uint when Kind == KindInt
	Float    float64
	boolVal  bool

	Child *Node // first child, for KindArray/KindMap
	Key   *Node // value-half's key, when this node is a map entry
	Next  *Node // next sibling
	Prev  *Node // previous sibling; non-owning
}

// Unsigned reports whether an Int-kind node's magnitude lives in Uint
// rather than Int.
func (n *Node) Unsigned() bool { return n.unsigned }

// AsInt64 widens whichever numeric slot is populated to int64. For a
// Uint magnitude above math.MaxInt64 this wraps, matching a raw
// int64(uint64) conversion.
func (n *Node) AsInt64() int64 {
	if n.unsigned {
		return int64(n.Uint)
	}
	return n.Int
}

// AsUint64 widens whichever numeric slot is populated to uint64.
func (n *Node) AsUint64() uint64 {
	if n.unsigned {
		return n.Uint
	}
	return uint64(n.Int)
}

// Bool returns the boolean value of a KindBool node.
func (n *Node) Bool() bool { return n.boolVal }

// --- constructors ---

// NilNode returns a node holding the untyped nil value.
func NilNode() *Node { return &Node{Kind: KindNil} }

// BoolNode returns a node holding a boolean value.
func BoolNode(b bool) *Node { return &Node{Kind: KindBool, boolVal: b} }

// IntNode returns a node holding a signed integer magnitude.
func IntNode(i int64) *Node { return &Node{Kind: KindInt, Int: i} }

// UintNode returns a node holding an unsigned integer magnitude.
func UintNode(u uint64) *Node { return &Node{Kind: KindInt, Uint: u, unsigned: true} }

// FloatNode returns a node holding a 64-bit float.
func FloatNode(f float64) *Node { return &Node{Kind: KindFloat, Float: f} }

// StringNode returns a node holding a UTF-8-style string payload. The
// bytes are copied so the caller's slice may be reused.
func StringNode(s string) *Node {
	return &Node{Kind: KindStr, Payload: append([]byte(nil), s...)}
}

// BlobNode returns a node holding an opaque binary payload. The bytes
// are copied so the caller's slice may be reused.
func BlobNode(b []byte) *Node {
	return &Node{Kind: KindBlob, Payload: append([]byte(nil), b...)}
}

// ExtNode returns a node holding an extension-typed binary payload.
func ExtNode(etype uint8, b []byte) *Node {
	return &Node{Kind: KindExt, Etype: etype, Payload: append([]byte(nil), b...)}
}

// NewArray returns an empty array node. Use AddToArray to append
// elements.
func NewArray() *Node { return &Node{Kind: KindArray} }

// NewMap returns an empty map node. Use AddToMap to append entries.
func NewMap() *Node { return &Node{Kind: KindMap} }
