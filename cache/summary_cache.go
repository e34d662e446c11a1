// Package cache persists per-function Summaries across builds, so that an unchanged function
// doesn't need to be re-abstracted every time its module's dependents are checked.
package cache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/zstd"

	"go.tfp.dev/shapecheck/config"
	"go.tfp.dev/shapecheck/interp"
	"go.tfp.dev/shapecheck/ir"
	"go.tfp.dev/shapecheck/symbolic"
	"go.tfp.dev/shapecheck/util/orderedmap"
)

func init() {
	gob.Register(symbolic.IntVar{})
	gob.Register(symbolic.IntLit{})
	gob.Register(symbolic.IntHole{})
	gob.Register(symbolic.Length{})
	gob.Register(symbolic.Element{})
	gob.Register(symbolic.IntBinOp{})
	gob.Register(symbolic.ListVar{})
	gob.Register(symbolic.ListLit{})
	gob.Register(symbolic.Broadcast{})
	gob.Register(symbolic.BoolTrue{})
	gob.Register(symbolic.BoolFalse{})
	gob.Register(symbolic.BoolVar{})
	gob.Register(symbolic.Not{})
	gob.Register(symbolic.And{})
	gob.Register(symbolic.Or{})
	gob.Register(symbolic.IntCompare{})
	gob.Register(symbolic.ListEq{})
	gob.Register(symbolic.BoolEq{})
	gob.Register(symbolic.Tuple{})
	gob.Register(ir.SourceLocation{})
	gob.Register(interp.ExprConstraint{})
	gob.Register(interp.CallConstraint{})
}

// SaveSummaries gob-encodes summaries and writes the result to w, compressed with zstd at
// config.SummaryCacheCompressionLevel. Summaries are written out in sorted-by-name order (via an
// orderedmap.OrderedMap, whose exported Pairs field gob encodes directly) rather than as a bare
// map, so that two runs over the same module produce byte-identical cache artifacts.
func SaveSummaries(w io.Writer, summaries map[string]*interp.Summary) error {
	names := make([]string, 0, len(summaries))
	for name := range summaries {
		names = append(names, name)
	}
	sort.Strings(names)

	ordered := orderedmap.New[string, *interp.Summary]()
	for _, name := range names {
		ordered.Store(name, summaries[name])
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ordered); err != nil {
		return fmt.Errorf("shapecheck: encoding summary cache: %w", err)
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevel(config.SummaryCacheCompressionLevel)))
	if err != nil {
		return fmt.Errorf("shapecheck: opening summary cache writer: %w", err)
	}
	if _, err := zw.Write(buf.Bytes()); err != nil {
		_ = zw.Close()
		return fmt.Errorf("shapecheck: writing summary cache: %w", err)
	}
	return zw.Close()
}

// LoadSummaries reads and decodes a summary cache previously written by SaveSummaries.
func LoadSummaries(r io.Reader) (map[string]*interp.Summary, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("shapecheck: opening summary cache reader: %w", err)
	}
	defer zr.Close()

	ordered := orderedmap.New[string, *interp.Summary]()
	if err := gob.NewDecoder(zr).Decode(ordered); err != nil {
		return nil, fmt.Errorf("shapecheck: decoding summary cache: %w", err)
	}

	summaries := make(map[string]*interp.Summary, len(ordered.Pairs))
	for _, p := range ordered.Pairs {
		summaries[p.Key] = p.Value
	}
	return summaries, nil
}
