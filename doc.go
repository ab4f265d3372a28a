// Package cmsgpack implements a codec for the MessagePack binary
// serialization format: a byte-exact shortest-form encoder, a
// resumable cursor-based decoder, and the tagged value tree (Node)
// both operate on.
//
// A Node is built by the decoder, by the constructor helpers (NilNode,
// BoolNode, IntNode, UintNode, FloatNode, StringNode, BlobNode,
// ExtNode, NewArray, NewMap), or by Duplicate. It exclusively owns its
// Payload and every Node reachable via Child, Key, or Next; Prev is a
// non-owning back-reference. There is no explicit free: once a Node
// becomes unreachable, the garbage collector reclaims it and
// everything it owns.
//
// Encode and Decode are pure and allocate only the bytes or nodes they
// return; neither performs I/O or retains state between calls, so
// independent trees may be encoded or decoded concurrently from
// separate goroutines as long as a single tree is never mutated from
// more than one goroutine at a time.
package cmsgpack
