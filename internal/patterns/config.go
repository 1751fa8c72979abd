// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"fmt"
	"math"

	"assistjur/internal/record"
)

// Config holds the tunable parameters of the detector. The numeric
// weights are configuration, not law: only the scoring contract
// (weights sum to 1.0, monotone factors) is enforced.
type Config struct {
	// Score weights per pattern class; must sum to 1.0.
	Weights map[record.Pattern]float64 `yaml:"pesos"`

	// Prova emprestada thresholds.
	MinDepoimentos     int     `yaml:"min_depoimentos"`
	ConcentracaoMinima float64 `yaml:"concentracao_minima"`

	// Homonym factor weights (each >= 0) and cutoffs.
	Homonimos HomonimoConfig `yaml:"homonimos"`

	// Maximum triangulation cycle length explored by the DFS.
	MaxCiclo int `yaml:"max_ciclo"`
}

// HomonimoConfig weights the mismatch factors of homonym detection.
type HomonimoConfig struct {
	PesoComarcaUF  float64  `yaml:"peso_comarca_uf"`
	PesoAdvogado   float64  `yaml:"peso_advogado"`
	PesoTemporal   float64  `yaml:"peso_temporal"`
	PesoNomeComum  float64  `yaml:"peso_nome_comum"`
	GapAnos        float64  `yaml:"gap_anos"`
	CorteAlta      float64  `yaml:"corte_alta"`
	CorteMedia     float64  `yaml:"corte_media"`
	NomesComuns    []string `yaml:"nomes_comuns"`
}

// DefaultConfig returns the shipped parameterization.
func DefaultConfig() Config {
	return Config{
		Weights: map[record.Pattern]float64{
			record.PatternDuploPapel:      0.30,
			record.PatternProvaEmprestada: 0.25,
			record.PatternTrocaDireta:     0.20,
			record.PatternTriangulacao:    0.15,
			record.PatternHomonimo:        0.10,
		},
		MinDepoimentos:     10,
		ConcentracaoMinima: 0.5,
		Homonimos: HomonimoConfig{
			PesoComarcaUF: 0.35,
			PesoAdvogado:  0.30,
			PesoTemporal:  0.20,
			PesoNomeComum: 0.15,
			GapAnos:       2.0,
			CorteAlta:     0.70,
			CorteMedia:    0.40,
			NomesComuns: []string{
				"jose", "joao", "maria", "ana", "antonio", "francisco",
				"carlos", "paulo", "pedro", "lucas",
			},
		},
		MaxCiclo: 6,
	}
}

// Validate checks the scoring contract.
func (c Config) Validate() error {
	sum := 0.0
	for _, p := range record.AllPatterns {
		w, ok := c.Weights[p]
		if !ok {
			return fmt.Errorf("peso ausente para o padrão %s", p)
		}
		if w < 0 {
			return fmt.Errorf("peso negativo para o padrão %s", p)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("pesos devem somar 1.0, somam %.4f", sum)
	}
	h := c.Homonimos
	if h.PesoComarcaUF < 0 || h.PesoAdvogado < 0 || h.PesoTemporal < 0 || h.PesoNomeComum < 0 {
		return fmt.Errorf("pesos de homônimos devem ser não-negativos")
	}
	if c.MinDepoimentos < 1 {
		return fmt.Errorf("min_depoimentos deve ser >= 1")
	}
	return nil
}
