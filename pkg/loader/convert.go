package loader

import (
	"go.starlark.net/starlark"

	"github.com/arthur-debert/mdot/pkg/errors"
	"github.com/arthur-debert/mdot/pkg/manifest"
)

// FromStarlark converts an evaluated Starlark value into a manifest
// value. Lists and tuples become tables with 1-based integer keys so
// positional slots line up with the manifest's table model; dicts keep
// their insertion order and may mix integer and string keys. Callables
// become deferred predicates.
func FromStarlark(thread *starlark.Thread, v starlark.Value) (manifest.Value, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return manifest.Nil(), nil
	case starlark.Bool:
		return manifest.Bool(bool(val)), nil
	case starlark.Int:
		i, ok := val.Int64()
		if !ok {
			return manifest.Nil(), errors.Newf(errors.ErrScriptValue,
				"integer %s does not fit in 64 bits", val)
		}
		return manifest.Int(i), nil
	case starlark.String:
		return manifest.String(string(val)), nil
	case *starlark.List:
		return fromSequence(thread, val.Len(), val.Index)
	case starlark.Tuple:
		return fromSequence(thread, val.Len(), val.Index)
	case *starlark.Dict:
		tbl := manifest.NewTable()
		for _, item := range val.Items() {
			key, err := FromStarlark(thread, item[0])
			if err != nil {
				return manifest.Nil(), err
			}
			if key.Kind() != manifest.KindInt && key.Kind() != manifest.KindString {
				return manifest.Nil(), errors.Newf(errors.ErrScriptValue,
					"manifest table keys must be int or string, got %s", item[0].Type())
			}
			value, err := FromStarlark(thread, item[1])
			if err != nil {
				return manifest.Nil(), err
			}
			tbl.Append(key, value)
		}
		return manifest.TableValue(tbl), nil
	case starlark.Callable:
		return manifest.Func(predicate(thread, val)), nil
	default:
		return manifest.Nil(), errors.Newf(errors.ErrScriptValue,
			"unsupported manifest value of type %s", v.Type())
	}
}

// fromSequence builds a table with 1-based integer keys from an
// indexable Starlark sequence.
func fromSequence(thread *starlark.Thread, n int, index func(int) starlark.Value) (manifest.Value, error) {
	tbl := manifest.NewTable()
	for i := 0; i < n; i++ {
		value, err := FromStarlark(thread, index(i))
		if err != nil {
			return manifest.Nil(), err
		}
		tbl.Append(manifest.Int(int64(i+1)), value)
	}
	return manifest.TableValue(tbl), nil
}

// predicate wraps a Starlark callable into a deferred zero-argument
// boolean. The call runs on the loader's thread; the manifest pass
// itself never invokes it.
func predicate(thread *starlark.Thread, fn starlark.Callable) manifest.Predicate {
	return func() (bool, error) {
		result, err := starlark.Call(thread, fn, nil, nil)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrScriptEval,
				"'enabled' predicate %s failed", fn.Name())
		}
		b, ok := result.(starlark.Bool)
		if !ok {
			return false, errors.Newf(errors.ErrScriptValue,
				"'enabled' predicate %s returned %s, want bool", fn.Name(), result.Type())
		}
		return bool(b), nil
	}
}
