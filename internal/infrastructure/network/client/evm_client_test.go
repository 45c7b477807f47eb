package client

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Reference vectors from the ENS name-processing algorithm.
func TestNamehash(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty name is the zero node",
			input:    "",
			expected: "0000000000000000000000000000000000000000000000000000000000000000",
		},
		{
			name:     "eth tld",
			input:    "eth",
			expected: "93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae",
		},
		{
			name:     "foo.eth",
			input:    "foo.eth",
			expected: "de9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f",
		},
		{
			name:     "uppercase input is folded",
			input:    "FOO.ETH",
			expected: "de9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := Namehash(tt.input)
			assert.Equal(t, tt.expected, hex.EncodeToString(node[:]))
		})
	}
}
