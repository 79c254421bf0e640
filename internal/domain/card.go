package domain

import "sort"

// CardID is the canonical content key for a card's interpretive record,
// e.g. "7ofcups" or "themagician". It is distinct from the image asset
// filename, which carries an orientation suffix and extension.
type CardID string

// Arcana classifies a card as major or minor arcana.
type Arcana string

const (
	ArcanaMajor Arcana = "major"
	ArcanaMinor Arcana = "minor"
)

// Orientation is the upright or reversed presentation of a drawn card.
type Orientation string

const (
	OrientationUpright  Orientation = "upright"
	OrientationReversed Orientation = "reversed"
)

// OrientationBlock maps a sphere key (general/work/love/health) to a
// language → text mapping. Any sphere's text may be absent; "general" is
// always an acceptable fallback target.
type OrientationBlock map[string]map[string]string

// Text returns the text for the given sphere and language, if present.
func (b OrientationBlock) Text(sphere, lang string) (string, bool) {
	langs, ok := b[sphere]
	if !ok {
		return "", false
	}
	text, ok := langs[lang]
	if !ok || text == "" {
		return "", false
	}
	return text, true
}

// CardRecord is the canonical per-card content record. Records are
// constructed once at content-load time and are immutable thereafter;
// the loaded catalog is process-wide read-only state.
type CardRecord struct {
	ID       CardID
	Titles   map[string]string // language → display title
	Arcana   Arcana
	Suit     string // minor arcana only
	Upright  OrientationBlock
	Reversed OrientationBlock
}

// Block returns the orientation block for the given orientation.
func (r CardRecord) Block(o Orientation) OrientationBlock {
	if o == OrientationReversed {
		return r.Reversed
	}
	return r.Upright
}

// TitleLangs returns the record's title languages in deterministic order.
func (r CardRecord) TitleLangs() []string {
	langs := make([]string, 0, len(r.Titles))
	for lang := range r.Titles {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
