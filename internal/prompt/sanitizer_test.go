package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"battle vocabulary", "A bloody battle with soldiers and swords", "A red historic gathering with guards and ceremonial staff"},
		{"war", "The war ended", "The historical event ended"},
		{"warfare keeps its own replacement", "Warfare changed", "history changed"},
		{"mood words", "dark forest fire", "softly lit forest soft glow"},
		{"death forms", "The king dies", "The king remembered"},
		{"korean terms", "전쟁과 전투", "역사적 사건과 역사적 장면"},
		{"korean weapons and invasion", "무기와 침략", "도구와 교류"},
		{"case insensitive", "BATTLEFIELD", "open field"},
		{"word boundaries protect software", "software engineer", "software engineer"},
		{"word boundaries protect names", "Dieter and the firefly", "Dieter and the firefly"},
		{"grimace untouched", "a grimace", "a grimace"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestSanitize_ReplacementsNeverMatch(t *testing.T) {
	for _, r := range SanitizerRules.Rules {
		assert.False(t, SanitizerRules.Matches(r.Replacement),
			"replacement %q for %s must not match any rule", r.Replacement, r.Pattern)
	}
}

func TestSanitize_ReplacementsSurviveHintFilter(t *testing.T) {
	for _, r := range SanitizerRules.Rules {
		assert.False(t, HintRules.Matches(r.Replacement),
			"replacement %q for %s would be stripped from style hints", r.Replacement, r.Pattern)
	}
	assert.Equal(t, "softly lit forest soft glow", FilterStyleHints(Sanitize("dark forest fire")))
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"A bloody battle with soldiers and swords on the battlefield",
		"Warriors invade during the war and fight with weapons",
		"A scary dark night, grim and gloomy, with burning flames",
		"전쟁 중 전투에서 무기를 든 침략과 죽음",
		"An angry, violent, brutal invader killed many",
		"peaceful village market",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
		assert.False(t, SanitizerRules.Matches(once), "sanitized %q still matches", once)
	}
}

func TestRuleSet_ApplyInOrder(t *testing.T) {
	rs := RuleSet{
		Version: "test",
		Rules: []Rule{
			rule(`a`, "b"),
			rule(`b`, "c"),
		},
	}

	assert.Equal(t, "cc", rs.Apply("ab"))
	assert.True(t, rs.Matches("xa"))
	assert.False(t, rs.Matches("xyz"))
}
