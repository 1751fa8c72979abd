// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistjur/internal/record"
)

func TestCPF(t *testing.T) {
	assert.Equal(t, "123.***.***-09", CPF("123.456.789-09"))
	assert.Equal(t, "123.***.***-09", CPF("12345678909"))
	assert.Equal(t, "CPF 123.***.***-09 do autor", CPF("CPF 123.456.789-09 do autor"))
	assert.Equal(t, "sem documento", CPF("sem documento"))
	assert.Equal(t, "", CPF(""))
}

func TestCNPJ(t *testing.T) {
	assert.Equal(t, "12.***.***/****-95", CNPJ("12.345.678/0001-95"))
	assert.Equal(t, "12.***.***/****-95", CNPJ("12345678000195"))
	assert.Equal(t, "texto sem cnpj", CNPJ("texto sem cnpj"))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "jo***@exemplo.com.br", Email("joao.santos@exemplo.com.br"))
	assert.Equal(t, "a***@exemplo.com", Email("a@exemplo.com"))
	assert.Equal(t, "contato: ma***@adv.com", Email("contato: maria@adv.com"))
	assert.Equal(t, "sem email", Email("sem email"))
}

func TestMaskerDisabledReturnsInput(t *testing.T) {
	rep := &record.ValidationReport{
		Cases: []record.CaseRecord{{ReclamanteCPF: "123.456.789-09"}},
	}
	out := Masker{}.Apply(rep)
	assert.Same(t, rep, out)
	assert.Equal(t, "123.456.789-09", out.Cases[0].ReclamanteCPF)
}

func TestMaskerApplyDoesNotMutateInput(t *testing.T) {
	rep := &record.ValidationReport{
		Cases: []record.CaseRecord{{
			ReclamanteCPF: "123.456.789-09",
			Unmapped: map[string]string{
				"email_contato": "joao@exemplo.com",
				"observacao":    "audiência remarcada",
			},
		}},
		Issues: []record.ValidationIssue{{
			Rule:     "cnj_corrigido",
			Original: "CPF 987.654.321-00",
			Message:  "contato maria@adv.com",
		}},
	}

	out := Masker{Enabled: true}.Apply(rep)
	require.NotSame(t, rep, out)

	assert.Equal(t, "123.***.***-09", out.Cases[0].ReclamanteCPF)
	assert.Equal(t, "jo***@exemplo.com", out.Cases[0].Unmapped["email_contato"])
	assert.Equal(t, "audiência remarcada", out.Cases[0].Unmapped["observacao"])
	assert.Equal(t, "CPF 987.***.***-00", out.Issues[0].Original)
	assert.Equal(t, "contato ma***@adv.com", out.Issues[0].Message)

	// Cleartext copy untouched.
	assert.Equal(t, "123.456.789-09", rep.Cases[0].ReclamanteCPF)
	assert.Equal(t, "joao@exemplo.com", rep.Cases[0].Unmapped["email_contato"])
	assert.Equal(t, "CPF 987.654.321-00", rep.Issues[0].Original)
}
