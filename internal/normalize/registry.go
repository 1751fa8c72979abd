// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

// FieldType tags the expected shape of a canonical field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeArray   FieldType = "array"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
)

// FieldSpec describes one canonical field: its type tag and the header
// spellings spreadsheet authors actually use for it.
type FieldSpec struct {
	Type     FieldType
	Synonyms []string
}

// Registry maps canonical field names to their specs. A Registry is
// immutable after construction; resolvers receive it by value at
// construction time so tests can substitute custom vocabularies.
type Registry map[string]FieldSpec

// WithSynonyms returns a copy of the registry with extra synonyms
// merged in. Unknown canonical names create string-typed entries.
func (r Registry) WithSynonyms(extra map[string][]string) Registry {
	if len(extra) == 0 {
		return r
	}
	out := make(Registry, len(r))
	for name, spec := range r {
		out[name] = spec
	}
	for name, syns := range extra {
		spec, ok := out[name]
		if !ok {
			spec = FieldSpec{Type: TypeString}
		}
		spec.Synonyms = append(append([]string{}, spec.Synonyms...), syns...)
		out[name] = spec
	}
	return out
}

// DefaultRegistry returns the built-in field vocabulary for the
// "Por Processo" and "Por Testemunha" sheets.
func DefaultRegistry() Registry {
	return Registry{
		// Case sheet.
		"cnj": {TypeString, []string{
			"CNJ", "cnj", "numero_cnj", "Número CNJ", "numero do processo",
			"Número do Processo", "processo", "Processo", "num_processo",
		}},
		"uf": {TypeString, []string{
			"UF", "uf", "estado", "Estado", "sigla_uf",
		}},
		"comarca": {TypeString, []string{
			"Comarca", "comarca", "municipio", "Município", "cidade", "Cidade",
		}},
		"tribunal": {TypeString, []string{
			"Tribunal", "tribunal", "TRT", "trt", "regiao", "Região",
		}},
		"vara": {TypeString, []string{
			"Vara", "vara", "vara_trabalho", "Vara do Trabalho", "orgao_julgador", "Órgão Julgador",
		}},
		"fase": {TypeString, []string{
			"Fase", "fase", "fase_processual", "Fase Processual",
		}},
		"status": {TypeString, []string{
			"Status", "status", "situacao", "Situação", "andamento", "Andamento",
		}},
		"reclamante_nome": {TypeString, []string{
			"Reclamante", "reclamante", "reclamante_nome", "Nome do Reclamante",
			"autor", "Autor", "requerente", "Requerente", "reclamante_limpo",
		}},
		"reu_nome": {TypeString, []string{
			"Réu", "Reu", "reu", "reu_nome", "Nome do Réu", "reclamada",
			"Reclamada", "requerido", "Requerido", "reu_limpo",
		}},
		"reclamante_cpf": {TypeString, []string{
			"CPF", "cpf", "cpf_reclamante", "CPF do Reclamante", "reclamante_cpf",
		}},
		"advogados_ativo": {TypeArray, []string{
			"Advogados (Polo Ativo)", "advogados_ativo", "advogados_parte_ativa",
			"advogado_ativo", "Advogado Ativo", "advogados do reclamante",
			"Advogados do Reclamante",
		}},
		"advogados_passivo": {TypeArray, []string{
			"Advogados (Polo Passivo)", "advogados_passivo", "advogados_parte_passiva",
			"advogado_passivo", "Advogado Passivo", "advogados da reclamada",
		}},
		"testemunhas_ativo": {TypeArray, []string{
			"Testemunhas (Polo Ativo)", "testemunhas_ativo", "testemunhas_ativas",
			"Testemunhas Ativo", "testemunhas do reclamante",
		}},
		"testemunhas_passivo": {TypeArray, []string{
			"Testemunhas (Polo Passivo)", "testemunhas_passivo", "testemunhas_passivas",
			"Testemunhas Passivo", "testemunhas da reclamada",
		}},
		"todas_testemunhas": {TypeArray, []string{
			"Todas as Testemunhas", "todas_testemunhas", "testemunhas",
			"Testemunhas", "testemunhas_todas",
		}},
		"data_audiencia": {TypeString, []string{
			"Data da Audiência", "data_audiencia", "audiencia", "Audiência",
			"data audiencia",
		}},
		"classificacao": {TypeString, []string{
			"Classificação", "classificacao", "classificacao_final",
			"Classificação Final", "classe_risco",
		}},
		"score_risco": {TypeNumber, []string{
			"Score de Risco", "score_risco", "score", "Score", "pontuacao_risco",
		}},

		// Witness sheet.
		"nome_testemunha": {TypeString, []string{
			"Nome da Testemunha", "nome_testemunha", "testemunha", "Testemunha",
			"nome", "Nome",
		}},
		"qtd_depoimentos": {TypeNumber, []string{
			"Qtd Depoimentos", "qtd_depoimentos", "quantidade_depoimentos",
			"Quantidade de Depoimentos", "depoimentos", "Depoimentos",
		}},
		"cnjs_como_testemunha": {TypeArray, []string{
			"CNJs como Testemunha", "cnjs_como_testemunha", "processos_como_testemunha",
			"Processos como Testemunha", "lista_cnjs",
		}},
		"cnjs_como_testemunha_ativo": {TypeArray, []string{
			"CNJs (Polo Ativo)", "cnjs_como_testemunha_ativo", "cnjs_ativo",
		}},
		"cnjs_como_testemunha_passivo": {TypeArray, []string{
			"CNJs (Polo Passivo)", "cnjs_como_testemunha_passivo", "cnjs_passivo",
		}},
		"ja_foi_reclamante": {TypeBoolean, []string{
			"Já foi Reclamante", "ja_foi_reclamante", "foi_reclamante",
		}},
		"foi_testemunha_em_ambos_polos": {TypeBoolean, []string{
			"Ambos os Polos", "foi_testemunha_em_ambos_polos", "ambos_polos",
			"testemunha_ambos_polos",
		}},
	}
}
