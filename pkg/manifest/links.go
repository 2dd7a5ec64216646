package manifest

import (
	"github.com/arthur-debert/mdot/pkg/errors"
)

// normalizeLinks resolves the polymorphic `links` table into an
// ordered list of LinkObject, one per entry. Links that share a source
// are kept as declared; conflict resolution across links is a
// deployment-time concern.
func (n *Normalizer) normalizeLinks(tbl *Table) ([]LinkObject, error) {
	links := make([]LinkObject, 0, tbl.Len())
	for _, pair := range tbl.Pairs() {
		link, err := normalizeLink(pair.Key, pair.Val)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

// normalizeLink classifies one `links` entry:
//
//	Integer = Table          -> object form: source/targets/overwrite/backup
//	String  = String | Table -> map shorthand: key is the source, value
//	                            the target list; flags default to false
//
// Every other shape is fatal.
func normalizeLink(key, value Value) (LinkObject, error) {
	switch {
	case key.Kind() == KindInt && value.Kind() == KindTable:
		tbl, _ := value.AsTable()
		return linkFromObject(tbl)
	case key.Kind() == KindString:
		source, _ := key.AsString()
		targets, err := parseTargetList(value)
		if err != nil {
			return LinkObject{}, err
		}
		if len(targets) == 0 {
			return LinkObject{}, errors.Newf(errors.ErrMissingField,
				"link '%s' has no targets", source)
		}
		return LinkObject{Source: source, Targets: targets}, nil
	default:
		return LinkObject{}, errors.Newf(errors.ErrShape,
			"expected link element, found %s = %s", key, value)
	}
}

// linkFromObject builds a LinkObject from the object form. `source`
// and `targets` are required; `overwrite` and `backup` default to
// false and must be booleans when present.
func linkFromObject(tbl *Table) (LinkObject, error) {
	var link LinkObject

	source := tbl.Field("source")
	switch source.Kind() {
	case KindString:
		link.Source, _ = source.AsString()
	case KindNil:
		return LinkObject{}, errors.New(errors.ErrMissingField,
			"link must contain 'source'")
	default:
		return LinkObject{}, errors.Newf(errors.ErrTypeMismatch,
			"link 'source' expected type 'String', got %s", source.Kind())
	}

	targetsVal := tbl.Field("targets")
	if targetsVal.IsNil() {
		return LinkObject{}, errors.New(errors.ErrMissingField,
			"link must contain 'targets'")
	}
	targets, err := parseTargetList(targetsVal)
	if err != nil {
		return LinkObject{}, err
	}
	if len(targets) == 0 {
		return LinkObject{}, errors.Newf(errors.ErrMissingField,
			"link '%s' has no targets", link.Source)
	}
	link.Targets = targets

	if link.Overwrite, err = linkFlag(tbl, "overwrite"); err != nil {
		return LinkObject{}, err
	}
	if link.Backup, err = linkFlag(tbl, "backup"); err != nil {
		return LinkObject{}, err
	}
	return link, nil
}

// linkFlag reads an optional boolean field of the object form.
func linkFlag(tbl *Table, name string) (bool, error) {
	v := tbl.Field(name)
	switch v.Kind() {
	case KindNil:
		return false, nil
	case KindBool:
		b, _ := v.AsBool()
		return b, nil
	default:
		return false, errors.Newf(errors.ErrTypeMismatch,
			"link '%s' expected type 'Boolean', got %s", name, v.Kind())
	}
}
