// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSystemListsAllPatterns(t *testing.T) {
	var buf bytes.Buffer
	DefaultSystem(true).ShowPatternList(&buf)

	out := buf.String()
	for _, name := range []string{"TROCA_DIRETA", "TRIANGULACAO", "DUPLO_PAPEL", "PROVA_EMPRESTADA", "HOMONIMO"} {
		assert.Contains(t, out, name)
	}
}

func TestShowPatternHelp(t *testing.T) {
	var buf bytes.Buffer
	h := DefaultSystem(true)

	require.NoError(t, h.ShowPatternHelp(&buf, "troca_direta"))
	out := buf.String()
	assert.Contains(t, out, "TROCA_DIRETA")
	assert.Contains(t, out, "SINAIS:")
	assert.Contains(t, out, "0.20")
}

func TestShowPatternHelpUnknown(t *testing.T) {
	var buf bytes.Buffer
	err := DefaultSystem(true).ShowPatternHelp(&buf, "inexistente")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "desconhecido"))
}
