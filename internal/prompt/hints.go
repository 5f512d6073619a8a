package prompt

import (
	"regexp"
	"strings"
)

// HintRules strip color-temperature and grading terms from caller style
// hints. The palette is fixed per era and must not be overridden.
var HintRules = RuleSet{
	Version: "1",
	Rules: []Rule{
		rule(`(?i)\b(warm|warmer|cool|cooler|cold|hot)(\s+|-)(tones?|colou?rs?|palette|lighting|light|hues?|tints?)\b`, ""),
		rule(`(?i)\b(warm|warmer|cool|cooler)\b`, ""),
		rule(`(?i)\bgolden[\s-]hour\b`, ""),
		rule(`(?i)\bsepia(\s+tones?)?\b`, ""),
		rule(`(?i)\b(orange|yellow|amber|blue|teal)(ish)?(\s+|-)(tint|cast|filter|tones?|grade|grading)\b`, ""),
		rule(`(?i)\b(vintage|retro|instagram)\s+filter\b`, ""),
		rule(`(?i)\b(desaturated|monochrome|grayscale|greyscale|black[\s-]and[\s-]white)\b`, ""),
		rule(`(?i)\b\d{3,5}\s?k\b`, ""),
	},
}

var (
	repeatedSeparators = regexp.MustCompile(`\s*[,;]\s*([,;]\s*)+`)
	repeatedSpaces     = regexp.MustCompile(`\s{2,}`)
	spaceBeforeComma   = regexp.MustCompile(`\s+([,;])`)
)

// FilterStyleHints removes disallowed palette terms from free-text hints and
// tidies the separators left behind
func FilterStyleHints(hints string) string {
	filtered := HintRules.Apply(hints)
	filtered = repeatedSeparators.ReplaceAllString(filtered, ", ")
	filtered = spaceBeforeComma.ReplaceAllString(filtered, "$1")
	filtered = repeatedSpaces.ReplaceAllString(filtered, " ")
	return strings.Trim(filtered, " ,;.\t\n")
}
