package prompt

// SanitizerRules maps scary or violent vocabulary to child-safe wording.
// No replacement may itself match a rule, which keeps Sanitize idempotent.
var SanitizerRules = RuleSet{
	Version: "3",
	Rules: []Rule{
		rule(`(?i)\bbattlefields?\b`, "open field"),
		rule(`(?i)\bbattles?\b`, "historic gathering"),
		rule(`(?i)\bwars?\b`, "historical event"),
		rule(`(?i)\bwarfare\b`, "history"),
		rule(`(?i)\bblood(y|shed)?\b`, "red"),
		rule(`(?i)\bweapons?\b`, "tools"),
		rule(`(?i)\bswords?\b`, "ceremonial staff"),
		rule(`(?i)\b(soldiers?|warriors?)\b`, "guards"),
		rule(`(?i)\b(invasions?|invaders?|invaded|invade)\b`, "arrival"),
		rule(`(?i)\b(kill(s|ed|ing)?|murder(ed)?|death|dead|die[ds]?)\b`, "remembered"),
		rule(`(?i)\b(fight(s|ing)?|combat)\b`, "standing firm"),
		rule(`(?i)\b(violent|violence|brutal|cruel)\b`, "spirited"),
		rule(`(?i)\b(scary|frightening|terrifying|horror|horrific|creepy)\b`, "friendly"),
		rule(`(?i)\b(dark(er|ness)?|gloomy)\b`, "softly lit"),
		rule(`(?i)\bgrim\b`, "calm"),
		rule(`(?i)\b(angry|anger|furious|rage)\b`, "determined"),
		rule(`(?i)\b(fire|flames?|burning)\b`, "soft glow"),
		rule(`전쟁`, "역사적 사건"),
		rule(`전투`, "역사적 장면"),
		rule(`무기`, "도구"),
		rule(`침략`, "교류"),
		rule(`죽음`, "추모"),
	},
}

// Sanitize rewrites a fully assembled instruction into child-safe wording.
// Sanitize(Sanitize(s)) == Sanitize(s) for every s.
func Sanitize(s string) string {
	return SanitizerRules.Apply(s)
}
