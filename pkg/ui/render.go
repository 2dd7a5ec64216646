package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/mdot/pkg/errors"
	"github.com/arthur-debert/mdot/pkg/manifest"
)

// Format selects a rendering of the normalized package sequence.
type Format string

const (
	FormatTerm Format = "term"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTerm, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput,
			"unknown format %q (want term, json or yaml)", s)
	}
}

// RenderPackages writes the package sequence to w in the given format.
func RenderPackages(w io.Writer, pkgs []manifest.Package, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(packageViews(pkgs))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(packageViews(pkgs))
	default:
		renderTerm(w, pkgs)
		return nil
	}
}

// renderTerm writes the styled human-readable listing.
func renderTerm(w io.Writer, pkgs []manifest.Package) {
	for _, pkg := range pkgs {
		renderPackageTerm(w, pkg, 0)
	}
}

func renderPackageTerm(w io.Writer, pkg manifest.Package, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s%s\n", indent, PackageStyle.Render(pkg.Name), enabledSuffix(pkg.Enabled))

	if name := packageNameView(pkg.PackageName); name != nil {
		fmt.Fprintf(w, "%s  %s %v\n", indent, LabelStyle.Render("package_name:"), name)
	}
	for _, link := range pkg.Links {
		flags := ""
		if link.Overwrite {
			flags += " [overwrite]"
		}
		if link.Backup {
			flags += " [backup]"
		}
		fmt.Fprintf(w, "%s  %s %s -> %s%s\n", indent,
			LabelStyle.Render("link:"),
			PathStyle.Render(link.Source),
			PathStyle.Render(strings.Join(link.Targets, ", ")),
			flags)
	}
	if len(pkg.Excludes) > 0 {
		fmt.Fprintf(w, "%s  %s %s\n", indent,
			LabelStyle.Render("excludes:"), strings.Join(pkg.Excludes, ", "))
	}
	if len(pkg.Templates) > 0 {
		fmt.Fprintf(w, "%s  %s %s\n", indent,
			LabelStyle.Render("templates:"), strings.Join(pkg.Templates, ", "))
	}
	for _, dep := range pkg.Depends {
		renderPackageTerm(w, dep, depth+1)
	}
}

func enabledSuffix(e manifest.Enabled) string {
	if e.Deferred() {
		return LabelStyle.Render(" (enabled: deferred)")
	}
	if on, _ := e.Resolve(); !on {
		return LabelStyle.Render(" (disabled)")
	}
	return ""
}

// packageView is the marshal-friendly shape shared by the JSON and
// YAML renderings.
type packageView struct {
	Name        string        `json:"name" yaml:"name"`
	PackageName interface{}   `json:"package_name,omitempty" yaml:"package_name,omitempty"`
	Enabled     interface{}   `json:"enabled" yaml:"enabled"`
	Depends     []packageView `json:"depends,omitempty" yaml:"depends,omitempty"`
	Links       []linkView    `json:"links,omitempty" yaml:"links,omitempty"`
	Excludes    []string      `json:"excludes,omitempty" yaml:"excludes,omitempty"`
	Templates   []string      `json:"templates,omitempty" yaml:"templates,omitempty"`
}

type linkView struct {
	Source    string   `json:"source" yaml:"source"`
	Targets   []string `json:"targets" yaml:"targets"`
	Overwrite bool     `json:"overwrite" yaml:"overwrite"`
	Backup    bool     `json:"backup" yaml:"backup"`
}

func packageViews(pkgs []manifest.Package) []packageView {
	views := make([]packageView, 0, len(pkgs))
	for _, pkg := range pkgs {
		views = append(views, newPackageView(pkg))
	}
	return views
}

func newPackageView(pkg manifest.Package) packageView {
	view := packageView{
		Name:        pkg.Name,
		PackageName: packageNameView(pkg.PackageName),
		Enabled:     enabledView(pkg.Enabled),
		Excludes:    pkg.Excludes,
		Templates:   pkg.Templates,
	}
	for _, link := range pkg.Links {
		view.Links = append(view.Links, linkView{
			Source:    link.Source,
			Targets:   link.Targets,
			Overwrite: link.Overwrite,
			Backup:    link.Backup,
		})
	}
	for _, dep := range pkg.Depends {
		view.Depends = append(view.Depends, newPackageView(dep))
	}
	return view
}

func packageNameView(pn manifest.PackageName) interface{} {
	switch pn.Kind {
	case manifest.PackageNameSame:
		return pn.Same
	case manifest.PackageNameSingle:
		return pn.Name
	case manifest.PackageNamePerOS:
		return pn.PerOS
	default:
		return nil
	}
}

func enabledView(e manifest.Enabled) interface{} {
	if e.Deferred() {
		return "deferred"
	}
	on, _ := e.Resolve()
	return on
}
