// Command mp2json reads MessagePack from stdin and writes JSON to stdout.
//
// Multiple top-level values are wrapped in a JSON array, matching the
// behavior of decoding a stream that contains more than one encoded
// value back to back.
package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sleepybishop/cmsgpack"
)

func main() {
	indent := flag.Bool("indent", false, "pretty-print the JSON output")
	flag.Parse()

	in, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mp2json: read stdin:", err)
		os.Exit(1)
	}

	values, err := decodeAll(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mp2json:", err)
		os.Exit(1)
	}

	var out any
	if len(values) == 1 {
		out = values[0]
	} else {
		out = values
	}

	enc := json.NewEncoder(os.Stdout)
	if *indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, "mp2json: encode json:", err)
		os.Exit(1)
	}
}

// decodeAll decodes every top-level MessagePack value in b and converts
// each to a JSON-compatible Go value. Decode already walks the entire
// buffer in one call, returning the full run of top-level values as a
// sibling chain headed by n.
func decodeAll(b []byte) ([]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	n, _, err := cmsgpack.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	var out []any
	for cur := n; cur != nil; cur = cur.Next {
		out = append(out, toJSON(cur))
	}
	return out, nil
}

// toJSON mirrors the original converter's node-to-object mapping: Ext
// and Blob payloads become base64 strings (Ext's tagged with its etype)
// since JSON has no binary type of its own.
func toJSON(n *cmsgpack.Node) any {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case cmsgpack.KindNil:
		return nil
	case cmsgpack.KindBool:
		return n.Bool()
	case cmsgpack.KindFloat:
		return n.Float
	case cmsgpack.KindInt:
		if n.Unsigned() {
			return n.AsUint64()
		}
		return n.AsInt64()
	case cmsgpack.KindStr:
		return string(n.Payload)
	case cmsgpack.KindBlob:
		return base64.StdEncoding.EncodeToString(n.Payload)
	case cmsgpack.KindExt:
		return map[string]any{
			"etype": n.Etype,
			"data":  base64.StdEncoding.EncodeToString(n.Payload),
		}
	case cmsgpack.KindArray:
		arr := []any{}
		for c := n.Child; c != nil; c = c.Next {
			arr = append(arr, toJSON(c))
		}
		return arr
	case cmsgpack.KindMap:
		obj := map[string]any{}
		for c := n.Child; c != nil; c = c.Next {
			if c.Key == nil || c.Key.Kind != cmsgpack.KindStr {
				continue
			}
			obj[string(c.Key.Payload)] = toJSON(c)
		}
		return obj
	default:
		return nil
	}
}
