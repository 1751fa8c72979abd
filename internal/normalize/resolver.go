// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolver maps arbitrary user-typed column headers onto the canonical
// field vocabulary. The registry is fixed at construction.
type Resolver struct {
	registry Registry
	// lookup index: canonical-header form -> canonical field name
	index map[string]string
}

// NewResolver builds a resolver over the given registry.
func NewResolver(registry Registry) *Resolver {
	r := &Resolver{
		registry: registry,
		index:    make(map[string]string),
	}
	for canonical, spec := range registry {
		r.index[CanonicalHeader(canonical)] = canonical
		for _, syn := range spec.Synonyms {
			r.index[CanonicalHeader(syn)] = canonical
		}
	}
	return r
}

// Resolve maps one header to its canonical field name. The exact
// canonical name matches first; otherwise a case-, trim- and
// accent-insensitive match against the registered synonyms. Returns
// ok=false for headers the vocabulary does not know.
func (r *Resolver) Resolve(header string) (string, bool) {
	if _, ok := r.registry[header]; ok {
		return header, true
	}
	canonical, ok := r.index[CanonicalHeader(header)]
	return canonical, ok
}

// MappedRow is the output of MapRow: resolved cells keyed by canonical
// name, plus the headers that could not be resolved, retained verbatim.
type MappedRow struct {
	Fields   map[string]any
	Unmapped map[string]string
}

// MapRow applies Resolve to every key. Unresolved keys are never
// dropped: they are kept under their original names in Unmapped so the
// import report can surface them.
func (r *Resolver) MapRow(raw map[string]any) MappedRow {
	out := MappedRow{
		Fields:   make(map[string]any, len(raw)),
		Unmapped: make(map[string]string),
	}
	for header, value := range raw {
		if canonical, ok := r.Resolve(header); ok {
			// First writer wins when two headers collide on the same
			// canonical field.
			if _, exists := out.Fields[canonical]; !exists {
				out.Fields[canonical] = value
			}
			continue
		}
		if s, ok := Cell(value); ok {
			out.Unmapped[header] = s
		} else {
			out.Unmapped[header] = ""
		}
	}
	return out
}

// ValidateType checks that a raw value is coercible to the registered
// type of the canonical field. It is advisory: failures become
// warnings, never import blockers.
func (r *Resolver) ValidateType(canonical string, value any) error {
	spec, ok := r.registry[canonical]
	if !ok {
		return fmt.Errorf("campo desconhecido: %s", canonical)
	}
	switch spec.Type {
	case TypeArray:
		switch value.(type) {
		case []string, []any, string, nil:
			return nil
		}
		return fmt.Errorf("campo %s espera lista, recebeu %T", canonical, value)
	case TypeNumber:
		switch t := value.(type) {
		case float64, int, int64, nil:
			return nil
		case string:
			s, ok := Cell(t)
			if !ok {
				return nil
			}
			if _, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err != nil {
				return fmt.Errorf("campo %s espera número, recebeu %q", canonical, t)
			}
			return nil
		}
		return fmt.Errorf("campo %s espera número, recebeu %T", canonical, value)
	case TypeBoolean:
		switch t := value.(type) {
		case bool, nil:
			return nil
		case string:
			s, ok := Cell(t)
			if !ok {
				return nil
			}
			switch strings.ToLower(s) {
			case "true", "false", "1", "0", "sim", "nao", "não":
				return nil
			}
			return fmt.Errorf("campo %s espera booleano, recebeu %q", canonical, t)
		}
		return fmt.Errorf("campo %s espera booleano, recebeu %T", canonical, value)
	default: // TypeString
		return nil
	}
}

// ParseBool interprets the boolean spellings ValidateType accepts.
func ParseBool(value any) bool {
	switch t := value.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "sim":
			return true
		}
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return false
}

// ParseNumber extracts a float from numeric or numeric-string cells.
func ParseNumber(value any) (float64, bool) {
	switch t := value.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		s, ok := Cell(t)
		if !ok {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
