// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixDate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		status DateStatus
		value  string
		format string
	}{
		{"canonical untouched", "2023-04-15", DateCanonical, "2023-04-15", "yyyy-MM-dd"},
		{"brazilian slash", "15/04/2023", DateFixed, "2023-04-15", "dd/MM/yyyy"},
		{"dash", "15-04-2023", DateFixed, "2023-04-15", "dd-MM-yyyy"},
		{"dots", "15.04.2023", DateFixed, "2023-04-15", "dd.MM.yyyy"},
		{"short day month", "5/4/2023", DateFixed, "2023-04-05", "d/M/yyyy"},
		{"two digit year 2000s", "5/4/23", DateFixed, "2023-04-05", "d/M/yy"},
		{"two digit year 1900s", "5/4/87", DateFixed, "1987-04-05", "d/M/yy"},
		{"compact iso", "20230415", DateFixed, "2023-04-15", "yyyyMMdd"},
		{"compact brazilian", "15042023", DateFixed, "2023-04-15", "ddMMyyyy"},
		{"leap day valid", "29/02/2024", DateFixed, "2024-02-29", "dd/MM/yyyy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := FixDate(tt.in)
			assert.Equal(t, tt.status, fix.Status)
			assert.Equal(t, tt.value, fix.Value)
			assert.Equal(t, tt.format, fix.Format)
		})
	}
}

func TestFixDate_Unparseable(t *testing.T) {
	for _, in := range []string{
		"", "null", "amanhã", "32/01/2023", "29/02/2023", "15/13/2023",
		"2023-02-30", "99999999",
	} {
		fix := FixDate(in)
		assert.Equal(t, DateUnparseable, fix.Status, "input %q", in)
		assert.Empty(t, fix.Value)
	}
}

func TestFixDate_Confidence(t *testing.T) {
	assert.InDelta(t, 0.98, FixDate("2023-04-15").Confidence, 0.001)
	assert.InDelta(t, 0.95, FixDate("15/04/2023").Confidence, 0.001)

	// 2-digit-year formats are ambiguous and score lower.
	assert.InDelta(t, 0.80, FixDate("5/4/23").Confidence, 0.001)

	// Implausible years take a further penalty.
	plausible := FixDate("15/04/2023").Confidence
	implausible := FixDate("15/04/1902").Confidence
	assert.Less(t, implausible, plausible)
}
