package manifest

// PackageNameKind identifies which form the manifest used for the
// `package_name` field.
type PackageNameKind int

const (
	// PackageNameUnset means the manifest did not declare the field.
	PackageNameUnset PackageNameKind = iota
	// PackageNameSame is the boolean form: the OS install name is the
	// pack's own name (or the pack has no installable unit when false).
	PackageNameSame
	// PackageNameSingle is a single explicit install name.
	PackageNameSingle
	// PackageNamePerOS maps an OS identifier to an install name.
	PackageNamePerOS
)

// PackageName describes how a pack is named for the OS package manager.
type PackageName struct {
	Kind  PackageNameKind
	Same  bool
	Name  string
	PerOS map[string]string
}

// Enabled is either a fixed boolean or a predicate the manifest script
// defers until deployment time.
type Enabled struct {
	value bool
	hook  Predicate
}

// EnabledValue returns a statically resolved Enabled.
func EnabledValue(b bool) Enabled { return Enabled{value: b} }

// EnabledHook returns an Enabled backed by a deferred predicate.
func EnabledHook(p Predicate) Enabled { return Enabled{hook: p} }

// Deferred reports whether resolution runs a script predicate.
func (e Enabled) Deferred() bool { return e.hook != nil }

// Resolve evaluates the enabled state. Static values never fail.
func (e Enabled) Resolve() (bool, error) {
	if e.hook != nil {
		return e.hook()
	}
	return e.value, nil
}

// LinkObject is one validated source-to-targets linking declaration.
type LinkObject struct {
	Source    string
	Targets   []string
	Overwrite bool
	Backup    bool
}

// Package is the canonical validated record for one deployment unit.
// List fields keep the manifest's declaration order; normalization
// never reorders or deduplicates them.
type Package struct {
	Name        string
	PackageName PackageName
	Enabled     Enabled
	Depends     []Package
	Links       []LinkObject
	Excludes    []string
	Templates   []string
}

// NewPackage returns a Package with the given name and defaults:
// enabled, no install-name override, all lists empty.
func NewPackage(name string) Package {
	return Package{
		Name:    name,
		Enabled: EnabledValue(true),
	}
}
