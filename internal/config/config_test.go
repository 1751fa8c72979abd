// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistjur/internal/record"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assistjur.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Defaults.Format)
	assert.Equal(t, 4, cfg.Defaults.Workers)
	assert.False(t, cfg.Defaults.Masked)

	pc := cfg.PatternConfig()
	require.NoError(t, pc.Validate())
	assert.Equal(t, 0.30, pc.Weights[record.PatternDuploPapel])
	assert.Equal(t, 10, pc.MinDepoimentos)

	_, ok := cfg.Profiles["auditoria"]
	assert.True(t, ok)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
defaults:
  format: json
  workers: 8
  masked: true
padroes:
  min_depoimentos: 5
  pesos:
    duplo_papel: 0.40
    prova_emprestada: 0.25
    troca_direta: 0.15
    triangulacao: 0.10
    homonimo: 0.10
sinonimos:
  cnj: ["numero unico"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Defaults.Format)
	assert.Equal(t, 8, cfg.Defaults.Workers)
	assert.True(t, cfg.Defaults.Masked)

	pc := cfg.PatternConfig()
	assert.Equal(t, 0.40, pc.Weights[record.PatternDuploPapel])
	assert.Equal(t, 5, pc.MinDepoimentos)

	reg := cfg.FieldRegistry()
	spec, ok := reg["cnj"]
	require.True(t, ok)
	assert.Contains(t, spec.Synonyms, "numero unico")
}

func TestLoadConfigRejectsBadWeights(t *testing.T) {
	path := writeConfig(t, `
padroes:
  pesos:
    duplo_papel: 0.90
    prova_emprestada: 0.25
    troca_direta: 0.20
    triangulacao: 0.15
    homonimo: 0.10
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "padrões inválida")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nao-existe.yaml"))
	assert.Error(t, err)
}

func TestApplyProfile(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.NoError(t, cfg.ApplyProfile(""))

	require.NoError(t, cfg.ApplyProfile("auditoria"))
	assert.Equal(t, "pdf", cfg.Defaults.Format)
	assert.True(t, cfg.Defaults.Masked)

	assert.Error(t, cfg.ApplyProfile("inexistente"))
}

func TestFindConfigFilePrefersEnv(t *testing.T) {
	t.Setenv("ASSISTJUR_CONFIG", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", FindConfigFile())
}
