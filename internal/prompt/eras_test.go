package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupEra(t *testing.T) {
	tests := []struct {
		era      string
		expected string
		found    bool
	}{
		{"고조선", "Gojoseon (Bronze Age Korea)", true},
		{"조선 후기", "Joseon dynasty", true},
		{"통일신라", "Unified Silla", true},
		{"통일 신라 시대", "Unified Silla", true},
		{"신라", "Silla kingdom", true},
		{"Goryeo Dynasty", "Goryeo dynasty", true},
		{"  BRONZE AGE  ", "Gojoseon (Bronze Age Korea)", true},
		{"대한제국", "Korean Empire", true},
		{"일제강점기", "period of Japanese occupation", true},
		{"신석기 시대", "prehistoric Korea", true},
		{"삼국시대", "Three Kingdoms of Korea", true},
		{"Atlantis", "Korean history", false},
		{"", "Korean history", false},
	}

	for _, tt := range tests {
		t.Run(tt.era, func(t *testing.T) {
			ctx, found := LookupEra(tt.era)
			assert.Equal(t, tt.expected, ctx.Name)
			assert.Equal(t, tt.found, found)
		})
	}
}

func TestEraTable_Complete(t *testing.T) {
	contexts := []EraContext{defaultEra}
	for _, entry := range eraTable {
		assert.NotEmpty(t, entry.matchers)
		contexts = append(contexts, entry.context)
	}

	for _, c := range contexts {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Environment)
		assert.NotEmpty(t, c.Props)
		assert.NotEmpty(t, c.ForbiddenLandmarks)
		assert.NotEmpty(t, c.Palette)

		for _, field := range []string{c.Name, c.Environment, c.Props, c.ForbiddenLandmarks, c.Palette} {
			assert.Equal(t, field, Sanitize(field), "era text must already be child-safe")
			assert.False(t, HintRules.Matches(field), "era text %q uses a palette term stripped from hints", field)
		}
	}
}
