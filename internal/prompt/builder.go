package prompt

import (
	"fmt"
	"strings"

	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/models"
)

// Variant describes one selectable illustration style. Each variant owns a
// cache version so images produced with different instructions never share
// a key.
type Variant struct {
	Style         models.Style
	CacheVersion  string
	StyleClause   string
	PaletteAccent string
}

var (
	RealisticVariant = Variant{
		Style:         models.StyleRealistic,
		CacheVersion:  "v1",
		StyleClause:   "detailed realistic historical illustration, museum-quality digital painting, natural lighting",
		PaletteAccent: "",
	}
	ChibiVariant = Variant{
		Style:         models.StyleChibi,
		CacheVersion:  "v2",
		StyleClause:   "cute chibi illustration with big heads, small rounded bodies, large friendly eyes, soft outlines, kid-friendly storybook feel",
		PaletteAccent: "with gentle pastel accents",
	}
)

// excludeClauses are appended to every instruction
var excludeClauses = []string{
	"no Chinese or Japanese architecture, clothing or landmarks unless the topic requires it",
	"no text, letters, captions, signatures or watermarks anywhere in the image",
	"no modern objects or anachronisms",
}

var _ interfaces.PromptBuilder = (*Builder)(nil)

type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// VariantFor returns the variant for style, defaulting to realistic
func VariantFor(style models.Style) Variant {
	if style == models.StyleChibi {
		return ChibiVariant
	}
	return RealisticVariant
}

// DefaultVersion is the cache version used when no override is configured
func DefaultVersion(style models.Style) string {
	return VariantFor(style).CacheVersion
}

// Build assembles the full child-safe instruction for req. It never fails:
// unknown eras and keywords fall back to generic descriptions.
func (b *Builder) Build(req models.ImageRequest) string {
	variant := VariantFor(req.Style)
	era, _ := LookupEra(req.Era)
	subjects := LookupSubjects(req.Keywords, era)
	topic := strings.TrimSpace(req.Topic)

	primary := topic
	primaryIdx := -1
	for i, s := range subjects {
		if s.Matched {
			primary = s.Description
			primaryIdx = i
			break
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Main subject: %s.", primary)
	fmt.Fprintf(&sb, " Setting: the %s period", era.Name)
	if topic != "" && primaryIdx >= 0 {
		fmt.Fprintf(&sb, " (%s)", topic)
	}
	sb.WriteString(".")
	fmt.Fprintf(&sb, " Environment: %s.", era.Environment)
	fmt.Fprintf(&sb, " Props: %s.", era.Props)

	var details []string
	for i, s := range subjects {
		if i == primaryIdx {
			continue
		}
		details = append(details, s.Description)
	}
	if len(details) > 0 {
		fmt.Fprintf(&sb, " Also show: %s.", strings.Join(details, "; "))
	}

	fmt.Fprintf(&sb, " Style: %s.", variant.StyleClause)
	palette := era.Palette
	if variant.PaletteAccent != "" {
		palette = palette + " " + variant.PaletteAccent
	}
	fmt.Fprintf(&sb, " Color palette: %s.", palette)

	if hints := FilterStyleHints(req.StyleHints); hints != "" {
		fmt.Fprintf(&sb, " Additional style notes: %s.", hints)
	}

	exclude := append([]string{}, excludeClauses...)
	exclude = append(exclude, era.ForbiddenLandmarks)
	fmt.Fprintf(&sb, " Exclude: %s.", strings.Join(exclude, "; "))

	return Sanitize(sb.String())
}
