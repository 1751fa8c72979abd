// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report renders a validation report in the supported output
// formats. Formatters register themselves in a registry keyed by
// format name, so the CLI and the store share one export path.
package report

import (
	"fmt"
	"sort"
	"strings"

	"assistjur/internal/record"
)

// Options configures how a report is rendered.
type Options struct {
	// Verbose includes per-row issues and the full score audit trail.
	Verbose bool
	// NoColor disables ANSI colors in formats that use them.
	NoColor bool
	// OnlyFlagged restricts case output to cases with at least one
	// detected pattern.
	OnlyFlagged bool
}

// Formatter renders one output format.
type Formatter interface {
	// Format renders the report. The returned bytes are ready to write
	// to a file or stdout.
	Format(rep *record.ValidationReport, options Options) ([]byte, error)

	// Name returns the format name used on the command line.
	Name() string

	// Description returns a one-line description for help output.
	Description() string

	// FileExtension returns the recommended extension, dot included.
	FileExtension() string
}

// Registry holds the registered formatters.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

// Register adds a formatter under its own name.
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Name()] = f
}

// Get retrieves a formatter by name.
func (r *Registry) Get(name string) (Formatter, bool) {
	f, ok := r.formatters[name]
	return f, ok
}

// List returns the registered format names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Export renders the report in the named format.
func (r *Registry) Export(format string, rep *record.ValidationReport, options Options) ([]byte, error) {
	f, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("formato não suportado %q; formatos disponíveis: %s",
			format, strings.Join(r.List(), ", "))
	}
	return f.Format(rep, options)
}

// DefaultRegistry carries every built-in formatter.
var DefaultRegistry = NewRegistry()

// Register adds a formatter to the default registry.
func Register(f Formatter) {
	DefaultRegistry.Register(f)
}

// Get looks up a formatter in the default registry.
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// Export renders with the default registry.
func Export(format string, rep *record.ValidationReport, options Options) ([]byte, error) {
	return DefaultRegistry.Export(format, rep, options)
}

func init() {
	Register(NewTextFormatter())
	Register(NewJSONFormatter())
	Register(NewCSVFormatter())
	Register(NewPDFFormatter())
}

// flaggedCases applies the OnlyFlagged filter.
func flaggedCases(rep *record.ValidationReport, options Options) []record.CaseRecord {
	if !options.OnlyFlagged {
		return rep.Cases
	}
	var out []record.CaseRecord
	for _, c := range rep.Cases {
		if c.Padroes != nil && c.Padroes.Score.Total > 0 {
			out = append(out, c)
		}
	}
	return out
}
