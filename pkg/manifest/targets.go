package manifest

import (
	"github.com/arthur-debert/mdot/pkg/errors"
)

// parseTargetList resolves the single-string-or-list-of-strings shape
// shared by link targets, excludes and templates. A table value is
// strictly positional: every pair must be (Integer, String), in
// sequence order; map-style pairs are rejected.
func parseTargetList(v Value) ([]string, error) {
	switch v.Kind() {
	case KindString:
		s, _ := v.AsString()
		return []string{s}, nil
	case KindTable:
		tbl, _ := v.AsTable()
		targets := make([]string, 0, tbl.Len())
		for _, pair := range tbl.Pairs() {
			if pair.Key.Kind() != KindInt {
				return nil, errors.Newf(errors.ErrShape,
					"invalid target element: [%s] = %s", pair.Key, pair.Val)
			}
			s, ok := pair.Val.AsString()
			if !ok {
				return nil, errors.Newf(errors.ErrShape,
					"invalid target element: [%s] = %s", pair.Key, pair.Val)
			}
			targets = append(targets, s)
		}
		return targets, nil
	default:
		return nil, errors.Newf(errors.ErrTypeMismatch,
			"targets expected type 'String' or 'Table', got %s", v.Kind())
	}
}
