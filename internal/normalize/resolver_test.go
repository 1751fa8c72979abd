// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_EverySynonymResolves(t *testing.T) {
	registry := DefaultRegistry()
	resolver := NewResolver(registry)

	for canonical, spec := range registry {
		got, ok := resolver.Resolve(canonical)
		require.True(t, ok, "canonical name %q must resolve to itself", canonical)
		assert.Equal(t, canonical, got)

		for _, syn := range spec.Synonyms {
			got, ok := resolver.Resolve(syn)
			require.True(t, ok, "synonym %q must resolve", syn)
			assert.Equal(t, canonical, got, "synonym %q", syn)
		}
	}
}

func TestResolve_CaseAndAccentInsensitive(t *testing.T) {
	resolver := NewResolver(DefaultRegistry())

	for header, want := range map[string]string{
		"  NÚMERO DO PROCESSO ":    "cnj",
		"numero do processo":       "cnj",
		"RECLAMANTE":               "reclamante_nome",
		"Advogados (Polo Ativo)":   "advogados_ativo",
		"ADVOGADOS_ATIVO":          "advogados_ativo",
		"Data da Audiencia":        "data_audiencia",
		"classificação":            "classificacao",
	} {
		got, ok := resolver.Resolve(header)
		require.True(t, ok, "header %q", header)
		assert.Equal(t, want, got, "header %q", header)
	}
}

func TestResolve_UnknownIsNotMapped(t *testing.T) {
	resolver := NewResolver(DefaultRegistry())
	_, ok := resolver.Resolve("coluna_inventada_pelo_usuario")
	assert.False(t, ok)
}

func TestMapRow_PreservesUnmappedColumns(t *testing.T) {
	resolver := NewResolver(DefaultRegistry())

	mapped := resolver.MapRow(map[string]any{
		"CNJ":              "1234567-89.2023.5.02.0001",
		"Observacao Extra": "manter este valor",
	})

	assert.Equal(t, "1234567-89.2023.5.02.0001", mapped.Fields["cnj"])
	require.Contains(t, mapped.Unmapped, "Observacao Extra")
	assert.Equal(t, "manter este valor", mapped.Unmapped["Observacao Extra"])
}

func TestMapRow_CustomRegistry(t *testing.T) {
	// Registries are injected, not global: a custom vocabulary must not
	// touch the default one.
	custom := Registry{
		"campo_x": {TypeString, []string{"X Header"}},
	}
	resolver := NewResolver(custom)

	got, ok := resolver.Resolve("x header")
	require.True(t, ok)
	assert.Equal(t, "campo_x", got)

	_, ok = resolver.Resolve("CNJ")
	assert.False(t, ok)
}

func TestWithSynonyms(t *testing.T) {
	base := DefaultRegistry()
	extended := base.WithSynonyms(map[string][]string{
		"cnj": {"num_unico"},
	})

	_, ok := NewResolver(base).Resolve("num_unico")
	assert.False(t, ok, "base registry must be unchanged")

	got, ok := NewResolver(extended).Resolve("num_unico")
	require.True(t, ok)
	assert.Equal(t, "cnj", got)
}

func TestValidateType(t *testing.T) {
	resolver := NewResolver(DefaultRegistry())

	assert.NoError(t, resolver.ValidateType("cnj", "123"))
	assert.NoError(t, resolver.ValidateType("advogados_ativo", "A;B"))
	assert.NoError(t, resolver.ValidateType("advogados_ativo", []string{"A"}))
	assert.Error(t, resolver.ValidateType("advogados_ativo", 12.0))
	assert.NoError(t, resolver.ValidateType("qtd_depoimentos", "14"))
	assert.NoError(t, resolver.ValidateType("qtd_depoimentos", "3,5"))
	assert.Error(t, resolver.ValidateType("qtd_depoimentos", "quatorze"))
	assert.NoError(t, resolver.ValidateType("ja_foi_reclamante", "TRUE"))
	assert.NoError(t, resolver.ValidateType("ja_foi_reclamante", "0"))
	assert.Error(t, resolver.ValidateType("ja_foi_reclamante", "talvez"))
	assert.Error(t, resolver.ValidateType("campo_que_nao_existe", "x"))
}
