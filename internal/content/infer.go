package content

import (
	"strings"

	"github.com/victorward/dailytarot/internal/domain"
)

// unknownCardID is the sentinel used when a major-arcana slug comes out
// empty (e.g. a record with only a non-Latin title and no explicit key).
const unknownCardID = domain.CardID("unknowncard")

// Placeholders substituted when a minor-arcana rank or suit cannot be
// resolved from the record's metadata.
const (
	unresolvedRank = "card"
	unresolvedSuit = "unknown"
)

// englishRanks maps the first token of an English minor-arcana title to
// the rank fragment of the composed CardID.
var englishRanks = map[string]string{
	"ace":    "ace",
	"two":    "2",
	"2":      "2",
	"three":  "3",
	"3":      "3",
	"four":   "4",
	"4":      "4",
	"five":   "5",
	"5":      "5",
	"six":    "6",
	"6":      "6",
	"seven":  "7",
	"7":      "7",
	"eight":  "8",
	"8":      "8",
	"nine":   "9",
	"9":      "9",
	"ten":    "10",
	"10":     "10",
	"page":   "page",
	"knight": "knight",
	"queen":  "queen",
	"king":   "king",
}

// russianRanks is the analogous table for the first token of a Russian
// title. Tokens are compared with ё normalized to е.
var russianRanks = map[string]string{
	"туз":       "ace",
	"двойка":    "2",
	"тройка":    "3",
	"четверка":  "4",
	"пятерка":   "5",
	"шестерка":  "6",
	"семерка":   "7",
	"восьмерка": "8",
	"девятка":   "9",
	"десятка":   "10",
	"паж":       "page",
	"рыцарь":    "knight",
	"дама":      "queen",
	"королева":  "queen",
	"король":    "king",
}

// russianSuitStems maps Russian suit noun stems to canonical suit names.
// Stems, not full words, so case endings match too ("кубков", "мечей").
var russianSuitStems = []struct {
	stem string
	suit string
}{
	{"кубк", "cups"},
	{"чаш", "cups"},
	{"пентакл", "pentacles"},
	{"монет", "pentacles"},
	{"меч", "swords"},
	{"жезл", "wands"},
	{"посох", "wands"},
}

// inferID derives a stable CardID for a record that carries no explicit
// key. It is a pure function of the record's metadata: the same record
// always infers the same id, regardless of whitespace or key order in the
// source object.
func inferID(meta rawMeta) domain.CardID {
	switch domain.Arcana(meta.Arcana) {
	case domain.ArcanaMinor:
		return domain.CardID(inferRank(meta) + "of" + inferSuit(meta))
	default:
		// Major arcana and records with no usable arcana share the slug rule.
		return slugID(meta)
	}
}

func slugID(meta rawMeta) domain.CardID {
	title := meta.Title["en"]
	if title == "" {
		title = meta.Title["ru"]
	}
	slug := slugify(title)
	if slug == "" {
		return unknownCardID
	}
	return domain.CardID(slug)
}

// slugify lowercases the title and strips everything except ASCII letters
// and digits. Non-Latin titles therefore slug to the empty string.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func inferRank(meta rawMeta) string {
	if rank, ok := englishRanks[firstToken(meta.Title["en"])]; ok {
		return rank
	}
	if rank, ok := russianRanks[firstToken(meta.Title["ru"])]; ok {
		return rank
	}
	return unresolvedRank
}

func inferSuit(meta rawMeta) string {
	if suit := strings.ToLower(strings.TrimSpace(meta.Suit)); suit != "" {
		return suit
	}
	title := normalizeRu(meta.Title["ru"])
	for _, entry := range russianSuitStems {
		if strings.Contains(title, entry.stem) {
			return entry.suit
		}
	}
	return unresolvedSuit
}

func firstToken(title string) string {
	fields := strings.Fields(normalizeRu(title))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func normalizeRu(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "ё", "е")
}
