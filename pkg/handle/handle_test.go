// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package handle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leminhduc/vidora/pkg/handle"
)

/*
TestFrom verifies handle normalization across the supported input shapes.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already_clean", "minhduc", "minhduc"},
		{"uppercase", "MinhDuc", "minhduc"},
		{"spaces_to_dots", "Minh Duc Le", "minh.duc.le"},
		{"diacritics_stripped", "Lê Minh Đức", "le.minh.duc"},
		{"punctuation_dropped", "minh!duc@99", "minhduc99"},
		{"collapsed_dots", "minh...duc", "minh.duc"},
		{"trimmed_edges", "  .minh.duc.  ", "minh.duc"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, handle.From(tt.input))
		})
	}
}
