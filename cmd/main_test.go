// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNoColor(t *testing.T) {
	tests := []struct {
		name       string
		configured bool
		explicit   bool
		isTTY      bool
		noColorEnv string
		want       bool
	}{
		{"explicit false wins over piped output", false, true, false, "", false},
		{"explicit false wins over NO_COLOR", false, true, true, "1", false},
		{"explicit true", true, true, true, "", true},
		{"piped output disables colors", false, false, false, "", true},
		{"NO_COLOR disables colors", false, false, true, "1", true},
		{"tty without env keeps config off", false, false, true, "", false},
		{"tty without env keeps config on", true, false, true, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveNoColor(tt.configured, tt.explicit, tt.isTTY, tt.noColorEnv)
			assert.Equal(t, tt.want, got)
		})
	}
}
