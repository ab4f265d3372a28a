// Command json2mp reads JSON from stdin and writes MessagePack to
// stdout, the inverse of mp2json.
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/sleepybishop/cmsgpack"
)

func main() {
	in, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "json2mp: read stdin:", err)
		os.Exit(1)
	}

	dec := json.NewDecoder(bytes.NewReader(in))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		fmt.Fprintln(os.Stderr, "json2mp: parse json:", err)
		os.Exit(1)
	}

	n, err := fromJSON(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, "json2mp:", err)
		os.Exit(1)
	}

	if _, err := os.Stdout.Write(cmsgpack.Encode(n)); err != nil {
		fmt.Fprintln(os.Stderr, "json2mp: write stdout:", err)
		os.Exit(1)
	}
}

// fromJSON mirrors the original converter's cJSON-to-node mapping. A
// JSON number that holds an exact int64 becomes an Int node; anything
// else (fractional, or out of int64 range) becomes a Float node. An Ext
// node's {"etype", "data"} shape (produced by mp2json) round-trips back
// into KindExt; any other object becomes a plain map.
func fromJSON(v any) (*cmsgpack.Node, error) {
	switch val := v.(type) {
	case nil:
		return cmsgpack.NilNode(), nil
	case bool:
		return cmsgpack.BoolNode(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return cmsgpack.IntNode(i), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", val, err)
		}
		return cmsgpack.FloatNode(f), nil
	case string:
		return cmsgpack.StringNode(val), nil
	case []any:
		arr := cmsgpack.NewArray()
		for _, e := range val {
			child, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			cmsgpack.AddToArray(arr, child)
		}
		return arr, nil
	case map[string]any:
		if ext, ok := extNode(val); ok {
			return ext, nil
		}
		m := cmsgpack.NewMap()
		for k, e := range val {
			child, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			cmsgpack.AddToMap(m, k, child)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported JSON value of type %T", v)
	}
}

// extNode recognizes the {"etype": N, "data": base64} shape mp2json
// emits for KindExt nodes and reconstructs the original node.
func extNode(obj map[string]any) (*cmsgpack.Node, bool) {
	if len(obj) != 2 {
		return nil, false
	}
	etypeRaw, hasEtype := obj["etype"]
	dataRaw, hasData := obj["data"]
	if !hasEtype || !hasData {
		return nil, false
	}
	etypeNum, ok := etypeRaw.(json.Number)
	if !ok {
		return nil, false
	}
	etype, err := etypeNum.Int64()
	if err != nil || etype < 0 || etype > math.MaxUint8 {
		return nil, false
	}
	dataStr, ok := dataRaw.(string)
	if !ok {
		return nil, false
	}
	payload, err := base64.StdEncoding.DecodeString(dataStr)
	if err != nil {
		return nil, false
	}
	return cmsgpack.ExtNode(uint8(etype), payload), true
}
