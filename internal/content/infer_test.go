package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/victorward/dailytarot/internal/domain"
)

func TestInferIDMajorArcana(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta rawMeta
		want domain.CardID
	}{
		{
			name: "english title slugged",
			meta: rawMeta{Arcana: "major", Title: map[string]string{"en": "The Magician", "ru": "Маг"}},
			want: "themagician",
		},
		{
			name: "punctuation and digits survive",
			meta: rawMeta{Arcana: "major", Title: map[string]string{"en": "Wheel of Fortune #10"}},
			want: "wheeloffortune10",
		},
		{
			name: "russian-only title slugs empty and falls back to sentinel",
			meta: rawMeta{Arcana: "major", Title: map[string]string{"ru": "Верховная Жрица"}},
			want: "unknowncard",
		},
		{
			name: "no arcana uses the major slug rule",
			meta: rawMeta{Title: map[string]string{"en": "The Fool"}},
			want: "thefool",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inferID(tt.meta))
		})
	}
}

func TestInferIDMinorArcana(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta rawMeta
		want domain.CardID
	}{
		{
			name: "english numeral rank with explicit suit",
			meta: rawMeta{Arcana: "minor", Suit: "cups", Title: map[string]string{"en": "7 of Cups"}},
			want: "7ofcups",
		},
		{
			name: "english word rank",
			meta: rawMeta{Arcana: "minor", Suit: "swords", Title: map[string]string{"en": "Seven of Swords"}},
			want: "7ofswords",
		},
		{
			name: "russian rank and suit from stems",
			meta: rawMeta{Arcana: "minor", Title: map[string]string{"ru": "Семёрка Кубков"}},
			want: "7ofcups",
		},
		{
			name: "russian court card",
			meta: rawMeta{Arcana: "minor", Title: map[string]string{"ru": "Королева Мечей"}},
			want: "queenofswords",
		},
		{
			name: "russian wands stem",
			meta: rawMeta{Arcana: "minor", Title: map[string]string{"ru": "Туз Жезлов"}},
			want: "aceofwands",
		},
		{
			name: "ace of pentacles via money stem",
			meta: rawMeta{Arcana: "minor", Title: map[string]string{"ru": "Туз Монет"}},
			want: "aceofpentacles",
		},
		{
			name: "unresolved rank substitutes card",
			meta: rawMeta{Arcana: "minor", Suit: "wands", Title: map[string]string{"en": "Mystery of Wands"}},
			want: "cardofwands",
		},
		{
			name: "unresolved suit substitutes unknown",
			meta: rawMeta{Arcana: "minor", Title: map[string]string{"en": "King of Nothing"}},
			want: "kingofunknown",
		},
		{
			name: "no titles at all",
			meta: rawMeta{Arcana: "minor"},
			want: "cardofunknown",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inferID(tt.meta))
		})
	}
}

func TestInferIDDeterministic(t *testing.T) {
	t.Parallel()

	meta := rawMeta{Arcana: "minor", Title: map[string]string{"en": "Ace of Cups", "ru": "Туз Кубков"}}
	first := inferID(meta)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, inferID(meta), "inferID must be a pure function")
	}
}
