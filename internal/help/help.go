// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package help renders the pattern documentation shown by
// --help-padroes. Each detector documents itself through a provider so
// the help text lives next to nothing but its registration.
package help

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// PatternInfo documents one detected pattern for reviewers.
type PatternInfo struct {
	Name                string   // pattern identifier (e.g. "TROCA_DIRETA")
	ShortDescription    string   // one line for the pattern list
	DetailedDescription string   // what the detector actually flags
	Sinais              []string // signals that raise the pattern
	Peso                float64  // default score weight
	Examples            []string // CLI usage examples
}

// Provider supplies the documentation of one pattern.
type Provider interface {
	GetPatternInfo() PatternInfo
}

// System renders pattern help.
type System struct {
	providers map[string]Provider
	colors    map[string]*color.Color
}

// NewSystem creates a help system; noColor disables ANSI output.
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}
	return &System{
		providers: make(map[string]Provider),
		colors: map[string]*color.Color{
			"title":  color.New(color.FgWhite, color.Bold),
			"header": color.New(color.FgCyan, color.Bold),
			"item":   color.New(color.FgCyan),
		},
	}
}

// RegisterProvider adds one pattern's documentation.
func (h *System) RegisterProvider(p Provider) {
	info := p.GetPatternInfo()
	h.providers[strings.ToUpper(info.Name)] = p
}

// ShowPatternList writes the one-line summary of every pattern.
func (h *System) ShowPatternList(out io.Writer) {
	h.colors["title"].Fprintln(out, "Padrões detectados pelo AssistJur.IA")
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range h.names() {
		info := h.providers[name].GetPatternInfo()
		fmt.Fprintf(w, "  %s\t(peso %.2f)\t%s\n", info.Name, info.Peso, info.ShortDescription)
	}
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Use --help-padroes <nome> para detalhes de um padrão.")
}

// ShowPatternHelp writes the detailed help of one pattern.
func (h *System) ShowPatternHelp(out io.Writer, name string) error {
	p, ok := h.providers[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("padrão %q desconhecido; padrões: %s",
			name, strings.Join(h.names(), ", "))
	}
	info := p.GetPatternInfo()

	h.colors["title"].Fprintln(out, info.Name)
	fmt.Fprintln(out, strings.Repeat("=", len(info.Name)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, info.DetailedDescription)
	fmt.Fprintln(out)

	if len(info.Sinais) > 0 {
		h.colors["header"].Fprintln(out, "SINAIS:")
		for _, s := range info.Sinais {
			fmt.Fprintf(out, "  - %s\n", s)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Peso padrão no score: %.2f\n", info.Peso)

	if len(info.Examples) > 0 {
		fmt.Fprintln(out)
		h.colors["header"].Fprintln(out, "EXEMPLOS:")
		for _, ex := range info.Examples {
			fmt.Fprintf(out, "  %s\n", ex)
		}
	}
	return nil
}

func (h *System) names() []string {
	names := make([]string, 0, len(h.providers))
	for name := range h.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
