// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"empty string", "", []string{}},
		{"empty brackets", "[]", []string{}},
		{"json array", `["Ana Silva","Bruno Costa"]`, []string{"Ana Silva", "Bruno Costa"}},
		{"single-quoted json", `['A','B']`, []string{"A", "B"}},
		{"mixed separators same precedence", "A;B,C", []string{"A", "B", "C"}},
		{"semicolons", "Ana; Bruno ; Carla", []string{"Ana", "Bruno", "Carla"}},
		{"commas with empties", "Ana,,Bruno,", []string{"Ana", "Bruno"}},
		{"unterminated bracket splits on separators", `["Ana",`, []string{`["Ana"`}},
		{"malformed json with brackets", `['Ana' 'Bruno']`, []string{"Ana Bruno"}},
		{"native string slice", []string{" Ana ", ""}, []string{"Ana"}},
		{"native any slice", []any{"Ana", 7.0}, []string{"Ana", "7"}},
		{"sentinel tokens dropped", "Ana;null;nan", []string{"Ana"}},
		{"scalar", "Ana Silva", []string{"Ana Silva"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, ParseList(tt.in))
			})
		})
	}
}

func TestParseList_Idempotent(t *testing.T) {
	first := ParseList("Ana;Bruno,Carla")
	second := ParseList(first)
	assert.Equal(t, first, second)
}

func TestParseList_NeverPanicsOnGarbage(t *testing.T) {
	garbage := []any{
		"[[[", "]]]", "[,;]", "[''\"]", "{not json}", "[{]}", ";;;,,,",
		"['a', {'b': 1}]", 42, 3.14, true, struct{ X int }{1},
	}
	for _, g := range garbage {
		assert.NotPanics(t, func() { ParseList(g) }, "input %v", g)
	}
}

func TestUnionLists(t *testing.T) {
	got := UnionLists(
		[]string{"Ana Silva", "Bruno"},
		[]string{"ana silva", "Carla"},
		[]string{"ANA SILVA", "Bruno", "Daniel"},
	)
	// Dedup is by canonical name; first-seen spelling wins.
	assert.Equal(t, []string{"Ana Silva", "Bruno", "Carla", "Daniel"}, got)
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "jose da silva", CanonicalName("  José   da  Silva "))
	assert.Equal(t, CanonicalName("João"), CanonicalName("JOAO"))
	assert.Equal(t, "", CanonicalName("   "))
}
