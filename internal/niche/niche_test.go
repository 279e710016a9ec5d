package niche

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     Result
	}{
		{"no keywords configured", "anything at all", nil, NotConfigured},
		{"empty keyword slice", "I love crypto art", []string{}, NotConfigured},
		{"simple hit", "I love crypto art", []string{"crypto"}, Hit},
		{"miss", "hello world", []string{"crypto"}, Miss},
		{"case insensitive text", "Big CRYPTO news", []string{"crypto"}, Hit},
		{"substring, not word boundary", "going to a party", []string{"art"}, Hit},
		{"second keyword hits", "talking about golang today", []string{"rust", "golang"}, Hit},
		{"empty text misses", "", []string{"crypto"}, Miss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.text, tt.keywords))
		})
	}
}
