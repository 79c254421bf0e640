// Package meanings resolves (card, orientation, sphere, language) tuples
// to display text with a documented fallback order. A content gap never
// blocks delivery: the worst case is a placeholder, not an error.
package meanings

import (
	"log/slog"

	"github.com/victorward/dailytarot/internal/content"
	"github.com/victorward/dailytarot/internal/domain"
)

// fallbackLang is the content's primary authoring language.
const fallbackLang = "ru"

// PlaceholderBody is returned when no interpretive text exists for any
// fallback combination.
const PlaceholderBody = "Описание для этой карты пока не добавлено."

// Resolver looks up display text in the loaded content store.
type Resolver struct {
	store  *content.Store
	logger *slog.Logger
}

// NewResolver creates a Resolver over the given store.
func NewResolver(store *content.Store, logger *slog.Logger) *Resolver {
	if store == nil {
		panic("store cannot be nil for Resolver")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:  store,
		logger: logger.With(slog.String("component", "meanings_resolver")),
	}
}

// Resolve returns the display title and body for a revealed card.
//
// Title fallback: requested language → ru → first available title →
// the raw CardID. Body fallback: exact (orientation, sphere, lang) →
// (orientation, general, lang) → (orientation, sphere, ru) →
// (orientation, general, ru) → placeholder.
//
// A CardID absent from the store resolves to (raw id, placeholder); this
// is a recoverable miss, not an error.
func (r *Resolver) Resolve(
	id domain.CardID,
	orientation domain.Orientation,
	sphere domain.Sphere,
	lang string,
) (title, body string) {
	record, ok := r.store.Get(id)
	if !ok {
		r.logger.Debug("card id missing from content store",
			slog.String("card_id", string(id)))
		return string(id), PlaceholderBody
	}
	return r.title(record, lang), r.body(record, orientation, sphere, lang)
}

func (r *Resolver) title(record domain.CardRecord, lang string) string {
	if title := record.Titles[lang]; title != "" {
		return title
	}
	if title := record.Titles[fallbackLang]; title != "" {
		return title
	}
	for _, l := range record.TitleLangs() {
		if title := record.Titles[l]; title != "" {
			return title
		}
	}
	return string(record.ID)
}

func (r *Resolver) body(
	record domain.CardRecord,
	orientation domain.Orientation,
	sphere domain.Sphere,
	lang string,
) string {
	block := record.Block(orientation)

	if text, ok := block.Text(string(sphere), lang); ok {
		return text
	}
	if text, ok := block.Text(string(domain.SphereGeneral), lang); ok {
		return text
	}
	if text, ok := block.Text(string(sphere), fallbackLang); ok {
		return text
	}
	if text, ok := block.Text(string(domain.SphereGeneral), fallbackLang); ok {
		return text
	}

	r.logger.Debug("no interpretive text for card",
		slog.String("card_id", string(record.ID)),
		slog.String("orientation", string(orientation)),
		slog.String("sphere", string(sphere)),
		slog.String("lang", lang))
	return PlaceholderBody
}
