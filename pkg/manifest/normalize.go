// Package manifest is the core of mdot: it turns the dynamically
// shaped configuration tree produced by the manifest script into a
// validated, ordered sequence of Package records.
//
// Normalization is a single pass over the tree. Recoverable issues are
// streamed to a Reporter as warnings; the first fatal issue aborts the
// pass and is returned as a coded error. The normalizer itself never
// terminates the process — that decision belongs to the caller.
package manifest

import (
	stderrors "errors"

	"github.com/arthur-debert/mdot/pkg/errors"
	"github.com/arthur-debert/mdot/pkg/logging"
	"github.com/rs/zerolog"
)

// Normalizer validates and resolves the manifest tree.
type Normalizer struct {
	reporter Reporter
	logger   zerolog.Logger
}

// NewNormalizer creates a Normalizer that emits warnings through the
// given reporter. A nil reporter logs warnings via zerolog.
func NewNormalizer(reporter Reporter) *Normalizer {
	logger := logging.GetLogger("manifest")
	if reporter == nil {
		reporter = LogReporter{Logger: logger}
	}
	return &Normalizer{
		reporter: reporter,
		logger:   logger,
	}
}

// NormalizeRoot walks the top-level table and produces one Package per
// entry, in declaration order. The first fatal issue aborts the pass;
// no partial sequence is returned.
func (n *Normalizer) NormalizeRoot(root *Table) ([]Package, error) {
	pkgs := make([]Package, 0, root.Len())
	for _, pair := range root.Pairs() {
		pkg, err := n.NormalizeEntry(pair.Key, pair.Val)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, pkg)
	}
	n.logger.Debug().Int("packages", len(pkgs)).Msg("Manifest normalized")
	return pkgs, nil
}

// NormalizeEntry classifies one top-level (key, value) pair:
//
//	Integer = String  -> bare-name package, all defaults
//	Integer = Table   -> anonymous package, name taken from the table
//	String  = Table   -> named package, name taken from the key
//
// Every other shape is fatal.
func (n *Normalizer) NormalizeEntry(key, value Value) (Package, error) {
	switch {
	case key.Kind() == KindInt && value.Kind() == KindString:
		name, _ := value.AsString()
		return NewPackage(name), nil
	case key.Kind() == KindInt && value.Kind() == KindTable:
		tbl, _ := value.AsTable()
		return n.fromTable("", false, tbl)
	case key.Kind() == KindString && value.Kind() == KindTable:
		name, _ := key.AsString()
		tbl, _ := value.AsTable()
		return n.fromTable(name, true, tbl)
	default:
		return Package{}, errors.Newf(errors.ErrShape,
			"unsupported package format: %s = %s", key, value)
	}
}

// hasInnerName reports whether the table itself supplies a name, via
// the positional slot [1] or the `name` field. Non-string values in
// either slot do not count; the field walk skips them later.
func hasInnerName(tbl *Table) bool {
	if _, ok := tbl.Index(1).AsString(); ok {
		return true
	}
	_, ok := tbl.Field("name").AsString()
	return ok
}

// extractName resolves the package name from the table itself. The
// positional slot [1] and the `name` field are mutually exclusive;
// supplying both, or neither, is an error.
func extractName(tbl *Table) (string, error) {
	positional, hasPositional := tbl.Index(1).AsString()
	field, hasField := tbl.Field("name").AsString()

	switch {
	case hasPositional && hasField:
		return "", errors.New(errors.ErrShape,
			"provide 'name' or positional [1] but not both")
	case hasPositional:
		return positional, nil
	case hasField:
		return field, nil
	default:
		return "", errors.New(errors.ErrMissingField,
			"package must have a name (at positional [1] or as 'name' field)")
	}
}

// fromTable builds a Package from a table-form entry. When the entry
// was declared under an outer string key, that key is the authoritative
// name: an inner name declaration only produces a warning and loses.
func (n *Normalizer) fromTable(outer string, hasOuter bool, tbl *Table) (Package, error) {
	var name string
	if hasOuter {
		name = outer
		if hasInnerName(tbl) {
			if inner, err := extractName(tbl); err != nil {
				var merr *errors.MdotError
				if stderrors.As(err, &merr) {
					n.warnf("%s", merr.Message)
				} else {
					n.warnf("%s", err)
				}
			} else {
				n.warnf("key '%s' overrides package name '%s'", outer, inner)
			}
		}
	} else {
		var err error
		name, err = extractName(tbl)
		if err != nil {
			return Package{}, err
		}
	}

	pkg := NewPackage(name)
	for _, pair := range tbl.Pairs() {
		key, ok := pair.Key.AsString()
		if !ok {
			// Positional slots were consumed by name extraction.
			continue
		}
		switch key {
		case "name":
			// Already consumed by extractName.
		case "links":
			ltbl, ok := pair.Val.AsTable()
			if !ok {
				return Package{}, errors.Newf(errors.ErrTypeMismatch,
					"'links' expected type 'Table', got %s", pair.Val.Kind())
			}
			links, err := n.normalizeLinks(ltbl)
			if err != nil {
				return Package{}, err
			}
			pkg.Links = links
		case "excludes":
			excludes, err := parseTargetList(pair.Val)
			if err != nil {
				return Package{}, err
			}
			pkg.Excludes = excludes
		case "templates":
			templates, err := parseTargetList(pair.Val)
			if err != nil {
				return Package{}, err
			}
			pkg.Templates = templates
		case "enabled":
			enabled, err := parseEnabled(pair.Val)
			if err != nil {
				return Package{}, err
			}
			pkg.Enabled = enabled
		case "package_name":
			pn, err := parsePackageName(pair.Val)
			if err != nil {
				return Package{}, err
			}
			pkg.PackageName = pn
		case "depends":
			depends, err := n.normalizeDepends(pair.Val)
			if err != nil {
				return Package{}, err
			}
			pkg.Depends = depends
		default:
			n.warnf("key '%s' is ignored", key)
		}
	}
	return pkg, nil
}

// parseEnabled accepts a boolean literal or a deferred predicate.
func parseEnabled(v Value) (Enabled, error) {
	switch v.Kind() {
	case KindBool:
		b, _ := v.AsBool()
		return EnabledValue(b), nil
	case KindFunc:
		p, _ := v.AsFunc()
		return EnabledHook(p), nil
	default:
		return Enabled{}, errors.Newf(errors.ErrTypeMismatch,
			"'enabled' expected type 'Boolean' or 'Function', got %s", v.Kind())
	}
}

// parsePackageName resolves the three forms of the `package_name`
// field: a boolean flag, a single name, or a per-OS name mapping.
func parsePackageName(v Value) (PackageName, error) {
	switch v.Kind() {
	case KindBool:
		b, _ := v.AsBool()
		return PackageName{Kind: PackageNameSame, Same: b}, nil
	case KindString:
		s, _ := v.AsString()
		return PackageName{Kind: PackageNameSingle, Name: s}, nil
	case KindTable:
		tbl, _ := v.AsTable()
		perOS := make(map[string]string, tbl.Len())
		for _, pair := range tbl.Pairs() {
			osName, ok := pair.Key.AsString()
			if !ok {
				return PackageName{}, errors.Newf(errors.ErrShape,
					"'package_name' expects OS-to-name pairs, found [%s] = %s", pair.Key, pair.Val)
			}
			install, ok := pair.Val.AsString()
			if !ok {
				return PackageName{}, errors.Newf(errors.ErrShape,
					"'package_name' expects OS-to-name pairs, found [%s] = %s", pair.Key, pair.Val)
			}
			perOS[osName] = install
		}
		return PackageName{Kind: PackageNamePerOS, PerOS: perOS}, nil
	default:
		return PackageName{}, errors.Newf(errors.ErrTypeMismatch,
			"'package_name' expected type 'Boolean', 'String' or 'Table', got %s", v.Kind())
	}
}

// normalizeDepends parses nested package declarations through the same
// shape dispatch as top-level entries. Dependencies are kept as
// declared: no name resolution, deduplication or cycle detection here;
// that belongs to a later deployment phase.
func (n *Normalizer) normalizeDepends(v Value) ([]Package, error) {
	tbl, ok := v.AsTable()
	if !ok {
		return nil, errors.Newf(errors.ErrTypeMismatch,
			"'depends' expected type 'Table', got %s", v.Kind())
	}
	depends := make([]Package, 0, tbl.Len())
	for _, pair := range tbl.Pairs() {
		dep, err := n.NormalizeEntry(pair.Key, pair.Val)
		if err != nil {
			return nil, err
		}
		depends = append(depends, dep)
	}
	return depends, nil
}
