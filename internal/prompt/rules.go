package prompt

import "regexp"

// Rule rewrites every match of Pattern with Replacement
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// RuleSet is a versioned, ordered list of rewrite rules. Rules are applied
// in slice order, so adding a banned term is a data change.
type RuleSet struct {
	Version string
	Rules   []Rule
}

// Apply runs every rule in order over s
func (rs RuleSet) Apply(s string) string {
	for _, r := range rs.Rules {
		s = r.Pattern.ReplaceAllLiteralString(s, r.Replacement)
	}
	return s
}

// Matches reports whether any rule matches s
func (rs RuleSet) Matches(s string) bool {
	for _, r := range rs.Rules {
		if r.Pattern.MatchString(s) {
			return true
		}
	}
	return false
}

func rule(pattern, replacement string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Replacement: replacement}
}
