// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

// staticProvider wraps a fixed PatternInfo.
type staticProvider struct {
	info PatternInfo
}

func (p staticProvider) GetPatternInfo() PatternInfo { return p.info }

// DefaultSystem returns a help system with every built-in pattern
// registered.
func DefaultSystem(noColor bool) *System {
	h := NewSystem(noColor)
	for _, info := range builtinPatterns {
		h.RegisterProvider(staticProvider{info})
	}
	return h
}

var builtinPatterns = []PatternInfo{
	{
		Name:             "TROCA_DIRETA",
		ShortDescription: "Testemunhas recíprocas ligadas pelos mesmos advogados",
		DetailedDescription: "Duas testemunhas formam uma troca direta quando depõem em processos\n" +
			"distintos representados pelos mesmos advogados, em via de mão dupla.\n" +
			"Testemunhas que apenas dividem um mesmo processo não contam.",
		Sinais: []string{
			"pelo menos dois advogados em comum ligando o par",
			"processos distintos para cada lado do par",
		},
		Peso:     0.20,
		Examples: []string{"assistjur --file dados.xlsx --help-padroes TROCA_DIRETA"},
	},
	{
		Name:             "TRIANGULACAO",
		ShortDescription: "Ciclos de três ou mais testemunhas interligadas",
		DetailedDescription: "Um ciclo fechado: A depõe em processo ligado a B, B a C, e C de volta\n" +
			"a A. Ciclos são deduplicados por rotação, então cada grupo aparece uma\n" +
			"única vez no relatório.",
		Sinais: []string{
			"ciclo de comprimento 3 ou mais no grafo de testemunhas",
			"advogados e comarcas recorrentes ao longo do ciclo",
		},
		Peso: 0.15,
	},
	{
		Name:             "DUPLO_PAPEL",
		ShortDescription: "Reclamante que também depõe como testemunha",
		DetailedDescription: "A mesma pessoa aparece como reclamante em um processo e como\n" +
			"testemunha em outro. Depor pelo polo passivo eleva o risco para ALTO.",
		Sinais: []string{
			"nome canônico presente nos dois papéis",
			"depoimento pelo polo passivo (risco ALTO)",
		},
		Peso: 0.30,
	},
	{
		Name:             "PROVA_EMPRESTADA",
		ShortDescription: "Testemunha profissional com depoimentos concentrados",
		DetailedDescription: "Testemunha com volume de depoimentos acima do limite configurado\n" +
			"(padrão: mais de 10) concentrados nos mesmos advogados ou na mesma\n" +
			"comarca. Os limites são configuráveis em padroes.min_depoimentos e\n" +
			"padroes.concentracao_minima.",
		Sinais: []string{
			"mais depoimentos que o limite configurado",
			"concentração de advogado ou comarca acima de 50%",
		},
		Peso: 0.25,
	},
	{
		Name:             "HOMONIMO",
		ShortDescription: "Mesmo nome que provavelmente é mais de uma pessoa",
		DetailedDescription: "Aparições do mesmo nome canônico com contextos incompatíveis:\n" +
			"comarcas distantes, advogados disjuntos, anos de intervalo, nome muito\n" +
			"comum. O score combinado classifica a probabilidade em MEDIA ou ALTA;\n" +
			"casos BAIXA não são reportados.",
		Sinais: []string{
			"comarca/UF divergente entre aparições",
			"conjuntos de advogados sem interseção",
			"intervalo temporal acima do configurado",
			"primeiro nome muito comum",
		},
		Peso: 0.10,
	},
}
