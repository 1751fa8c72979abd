// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration file and resolves
// profiles. Every knob has a shipped default; a missing config file is
// not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"assistjur/internal/normalize"
	"assistjur/internal/patterns"
	"assistjur/internal/record"
)

// Config represents the application configuration.
type Config struct {
	// Default settings, overridable per profile and by CLI flags.
	Defaults struct {
		Format      string `yaml:"format"`
		Verbose     bool   `yaml:"verbose"`
		NoColor     bool   `yaml:"no_color"`
		Masked      bool   `yaml:"masked"`
		OnlyFlagged bool   `yaml:"only_flagged"`
		Workers     int    `yaml:"workers"`
		StorePath   string `yaml:"store_path"`
	} `yaml:"defaults"`

	// Pattern detection tuning.
	Patterns PatternsConfig `yaml:"padroes"`

	// Extra header synonyms merged into the built-in vocabulary,
	// keyed by canonical field name.
	Synonyms map[string][]string `yaml:"sinonimos"`

	// Profiles for different review scenarios.
	Profiles map[string]Profile `yaml:"profiles"`
}

// PatternsConfig mirrors patterns.Config in YAML-friendly form.
type PatternsConfig struct {
	Pesos struct {
		DuploPapel      float64 `yaml:"duplo_papel"`
		ProvaEmprestada float64 `yaml:"prova_emprestada"`
		TrocaDireta     float64 `yaml:"troca_direta"`
		Triangulacao    float64 `yaml:"triangulacao"`
		Homonimo        float64 `yaml:"homonimo"`
	} `yaml:"pesos"`
	MinDepoimentos     int                     `yaml:"min_depoimentos"`
	ConcentracaoMinima float64                 `yaml:"concentracao_minima"`
	MaxCiclo           int                     `yaml:"max_ciclo"`
	Homonimos          patterns.HomonimoConfig `yaml:"homonimos"`
}

// Profile overrides the defaults for one scenario.
type Profile struct {
	Description string `yaml:"description"`
	Format      string `yaml:"format"`
	Verbose     *bool  `yaml:"verbose"`
	NoColor     *bool  `yaml:"no_color"`
	Masked      *bool  `yaml:"masked"`
	OnlyFlagged *bool  `yaml:"only_flagged"`
	Workers     int    `yaml:"workers"`
}

// LoadConfig loads configuration from the given path. An empty path
// returns the defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := defaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("ler arquivo de configuração: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("interpretar arquivo de configuração: %w", err)
	}

	if err := cfg.PatternConfig().Validate(); err != nil {
		return nil, fmt.Errorf("configuração de padrões inválida: %w", err)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{
		Profiles: make(map[string]Profile),
	}
	cfg.Defaults.Format = "text"
	cfg.Defaults.Workers = 4
	cfg.Defaults.StorePath = ""

	base := patterns.DefaultConfig()
	cfg.Patterns.Pesos.DuploPapel = base.Weights[record.PatternDuploPapel]
	cfg.Patterns.Pesos.ProvaEmprestada = base.Weights[record.PatternProvaEmprestada]
	cfg.Patterns.Pesos.TrocaDireta = base.Weights[record.PatternTrocaDireta]
	cfg.Patterns.Pesos.Triangulacao = base.Weights[record.PatternTriangulacao]
	cfg.Patterns.Pesos.Homonimo = base.Weights[record.PatternHomonimo]
	cfg.Patterns.MinDepoimentos = base.MinDepoimentos
	cfg.Patterns.ConcentracaoMinima = base.ConcentracaoMinima
	cfg.Patterns.MaxCiclo = base.MaxCiclo
	cfg.Patterns.Homonimos = base.Homonimos

	masked := true
	cfg.Profiles["auditoria"] = Profile{
		Description: "Exportação mascarada e completa, para auditoria externa",
		Format:      "pdf",
		Masked:      &masked,
	}
	return cfg
}

// FindConfigFile looks for a configuration file: the ASSISTJUR_CONFIG
// environment variable first, then the working directory.
func FindConfigFile() string {
	if path := os.Getenv("ASSISTJUR_CONFIG"); path != "" {
		return path
	}
	for _, name := range []string{"assistjur.yaml", "assistjur.yml", ".assistjur.yaml"} {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// PatternConfig converts the YAML form into the detector's config.
func (c *Config) PatternConfig() patterns.Config {
	out := patterns.Config{
		Weights: map[record.Pattern]float64{
			record.PatternDuploPapel:      c.Patterns.Pesos.DuploPapel,
			record.PatternProvaEmprestada: c.Patterns.Pesos.ProvaEmprestada,
			record.PatternTrocaDireta:     c.Patterns.Pesos.TrocaDireta,
			record.PatternTriangulacao:    c.Patterns.Pesos.Triangulacao,
			record.PatternHomonimo:        c.Patterns.Pesos.Homonimo,
		},
		MinDepoimentos:     c.Patterns.MinDepoimentos,
		ConcentracaoMinima: c.Patterns.ConcentracaoMinima,
		Homonimos:          c.Patterns.Homonimos,
		MaxCiclo:           c.Patterns.MaxCiclo,
	}
	return out
}

// FieldRegistry returns the header vocabulary with the configured
// synonym extensions applied.
func (c *Config) FieldRegistry() normalize.Registry {
	return normalize.DefaultRegistry().WithSynonyms(c.Synonyms)
}

// ApplyProfile overlays one named profile onto the defaults.
func (c *Config) ApplyProfile(name string) error {
	if name == "" {
		return nil
	}
	p, ok := c.Profiles[name]
	if !ok {
		return fmt.Errorf("perfil %q não definido", name)
	}
	if p.Format != "" {
		c.Defaults.Format = p.Format
	}
	if p.Verbose != nil {
		c.Defaults.Verbose = *p.Verbose
	}
	if p.NoColor != nil {
		c.Defaults.NoColor = *p.NoColor
	}
	if p.Masked != nil {
		c.Defaults.Masked = *p.Masked
	}
	if p.OnlyFlagged != nil {
		c.Defaults.OnlyFlagged = *p.OnlyFlagged
	}
	if p.Workers > 0 {
		c.Defaults.Workers = p.Workers
	}
	return nil
}
