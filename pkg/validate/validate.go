// Package validate checks the inputs of a figure before it is assembled.
//
// Every function is pure and reports the first problem it finds as an
// [errors.ValidationError] naming the field, the expected shape and the
// observed value, so callers can surface the message unchanged.
//
// [errors.ValidationError]: github.com/matzehuels/assetgraph/pkg/errors.ValidationError
package validate

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/assetgraph/pkg/asset"
	apperr "github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/layout"
)

const positionsShape = "2-D numeric array with 2 or 3 columns"

type number interface {
	~int | ~int64 | ~float32 | ~float64
}

// Positions checks a position array. Accepted containers are layout.Matrix,
// *layout.Matrix and [][]T for float64, float32, int and int64. The array must
// be rectangular with 2 or 3 columns and contain only finite values. An array
// with zero rows is valid.
func Positions(v any) error {
	switch m := v.(type) {
	case layout.Matrix:
		return matrix(m)
	case *layout.Matrix:
		if m == nil {
			return apperr.Invalid("positions", positionsShape, "nil")
		}
		return matrix(*m)
	case [][]float64:
		return rows(m)
	case [][]float32:
		return rows(m)
	case [][]int:
		return rows(m)
	case [][]int64:
		return rows(m)
	case nil:
		return apperr.Invalid("positions", positionsShape, "nil")
	case []float64, []float32, []int, []int64:
		return apperr.Invalid("positions", positionsShape, fmt.Sprintf("1-D %T", v))
	case [][][]float64:
		return apperr.Invalid("positions", positionsShape, fmt.Sprintf("3-D %T", v))
	default:
		return apperr.Invalid("positions", positionsShape, fmt.Sprintf("%T", v))
	}
}

func matrix(m layout.Matrix) error {
	if m.Cols != 2 && m.Cols != 3 {
		return apperr.Invalid("positions", positionsShape, fmt.Sprintf("%d columns", m.Cols))
	}
	if m.Rows < 0 || len(m.Data) != m.Rows*m.Cols {
		return apperr.Invalid("positions", fmt.Sprintf("%d values for %dx%d", m.Rows*m.Cols, m.Rows, m.Cols), len(m.Data))
	}
	for k, x := range m.Data {
		if !finite(x) {
			return apperr.Invalid(fmt.Sprintf("positions[%d][%d]", k/m.Cols, k%m.Cols), "finite number", x)
		}
	}
	return nil
}

func rows[T number](r [][]T) error {
	if len(r) == 0 {
		return nil
	}
	cols := len(r[0])
	if cols != 2 && cols != 3 {
		return apperr.Invalid("positions", positionsShape, fmt.Sprintf("%d columns", cols))
	}
	for i, row := range r {
		if len(row) != cols {
			return apperr.Invalid(fmt.Sprintf("positions[%d]", i), fmt.Sprintf("%d columns", cols), len(row))
		}
		for j, x := range row {
			if !finite(float64(x)) {
				return apperr.Invalid(fmt.Sprintf("positions[%d][%d]", i, j), "finite number", x)
			}
		}
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// AssetIDs checks that v is a []string or []any whose elements are all
// non-empty strings. An empty list is valid.
func AssetIDs(v any) error {
	const shape = "list of non-empty strings"
	switch ids := v.(type) {
	case []string:
		for i, id := range ids {
			if id == "" {
				return apperr.Invalid(fmt.Sprintf("asset_ids[%d]", i), "non-empty string", `""`)
			}
		}
		return nil
	case []any:
		for i, e := range ids {
			s, ok := e.(string)
			if !ok {
				return apperr.Invalid(fmt.Sprintf("asset_ids[%d]", i), "string", fmt.Sprintf("%T", e))
			}
			if s == "" {
				return apperr.Invalid(fmt.Sprintf("asset_ids[%d]", i), "non-empty string", `""`)
			}
		}
		return nil
	case nil:
		return apperr.Invalid("asset_ids", shape, "nil")
	default:
		return apperr.Invalid("asset_ids", shape, fmt.Sprintf("%T", v))
	}
}

// HoverTexts checks that there are exactly expectedLen texts and that none is
// blank.
func HoverTexts(texts []string, expectedLen int) error {
	if len(texts) != expectedLen {
		return apperr.Invalid("hover_texts", fmt.Sprintf("%d entries", expectedLen), len(texts))
	}
	for i, s := range texts {
		if strings.TrimSpace(s) == "" {
			return apperr.Invalid(fmt.Sprintf("hover_texts[%d]", i), "non-empty string", fmt.Sprintf("%q", s))
		}
	}
	return nil
}

// Filters checks that every filter key is a known relationship type. A nil
// known list selects the registered types. Keys are checked in sorted order so
// the reported key is stable.
func Filters(f map[string]bool, known []string) error {
	if known == nil {
		known = asset.KnownRelationshipTypes()
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !slices.Contains(known, k) {
			return apperr.Invalid(fmt.Sprintf("filters[%q]", k), "known relationship type", k)
		}
	}
	return nil
}

// FiltersAny validates an undecoded filter object, such as one read from JSON,
// and converts it. Every value must be a boolean and every key known.
func FiltersAny(f map[string]any, known []string) (map[string]bool, error) {
	if f == nil {
		return nil, nil
	}
	out := make(map[string]bool, len(f))
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		b, ok := f[k].(bool)
		if !ok {
			return nil, apperr.Invalid(fmt.Sprintf("filters[%q]", k), "boolean", fmt.Sprintf("%T", f[k]))
		}
		out[k] = b
	}
	if err := Filters(out, known); err != nil {
		return nil, err
	}
	return out, nil
}
