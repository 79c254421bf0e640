// Package content turns the raw meanings document into the read-only
// card-record store. The document is tolerated as a sequence of
// concatenated top-level JSON objects rather than one valid document;
// malformed pieces degrade the load instead of failing it, because a
// stalled product is worse than an imperfect one.
package content

import (
	"encoding/json"
	"log/slog"

	"github.com/victorward/dailytarot/internal/domain"
)

// objectForm is the shape of one top-level object, decided once per object
// and then handled exhaustively.
type objectForm int

const (
	// formExplicitID: exactly one top-level key, and that key is not a
	// record field; the key is the CardID and its value the record body.
	formExplicitID objectForm = iota

	// formMetaOrientation: the object is the record body itself (keys drawn
	// from meta/upright/reversed, meta present); the CardID is inferred.
	formMetaOrientation

	// formUnrecognized: anything else; rejected and logged, never fatal.
	formUnrecognized
)

// rawCard is the wire shape of one card record body.
type rawCard struct {
	Meta     rawMeta                      `json:"meta"`
	Upright  map[string]map[string]string `json:"upright"`
	Reversed map[string]map[string]string `json:"reversed"`
}

type rawMeta struct {
	Arcana string            `json:"arcana"`
	Suit   string            `json:"suit"`
	Title  map[string]string `json:"title"`
}

// LoadStats summarizes one load for logging and for the validate CLI.
type LoadStats struct {
	Objects    int // candidate objects found by the scanner
	Loaded     int // records accepted into the store
	ParseFails int // candidates that were not valid JSON
	Rejected   int // valid JSON with an unrecognized key shape
	Overwrites int // duplicate CardIDs resolved last-write-wins
}

// Load parses the raw meanings text into a Store. An empty or missing
// source yields an empty store, not an error, so the service can run in a
// degraded placeholder-only mode. Individual bad objects are skipped and
// counted; duplicate ids merge last-write-wins with a warning.
func Load(raw []byte, logger *slog.Logger) (*Store, LoadStats) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "content_store"))

	store := &Store{cards: make(map[domain.CardID]domain.CardRecord)}
	var stats LoadStats

	for _, candidate := range splitObjects(raw) {
		stats.Objects++

		var top map[string]json.RawMessage
		if err := json.Unmarshal(candidate, &top); err != nil {
			stats.ParseFails++
			logger.Warn("skipping malformed content object",
				slog.Int("object", stats.Objects),
				slog.String("error", err.Error()))
			continue
		}

		form, explicitID := classify(top)

		var id domain.CardID
		var body rawCard
		switch form {
		case formExplicitID:
			if err := json.Unmarshal(top[explicitID], &body); err != nil {
				stats.ParseFails++
				logger.Warn("skipping card with malformed body",
					slog.String("card_id", explicitID),
					slog.String("error", err.Error()))
				continue
			}
			id = domain.CardID(explicitID)
		case formMetaOrientation:
			if err := json.Unmarshal(candidate, &body); err != nil {
				stats.ParseFails++
				logger.Warn("skipping card with malformed body",
					slog.Int("object", stats.Objects),
					slog.String("error", err.Error()))
				continue
			}
			id = inferID(body.Meta)
		case formUnrecognized:
			stats.Rejected++
			logger.Warn("rejecting content object with unrecognized key shape",
				slog.Int("object", stats.Objects),
				slog.Int("keys", len(top)))
			continue
		}

		if _, exists := store.cards[id]; exists {
			stats.Overwrites++
			logger.Warn("duplicate card id, later object wins",
				slog.String("card_id", string(id)))
		}
		store.cards[id] = toRecord(id, body)
		stats.Loaded++
	}

	logger.Info("meanings content loaded",
		slog.Int("objects", stats.Objects),
		slog.Int("loaded", stats.Loaded),
		slog.Int("parse_failures", stats.ParseFails),
		slog.Int("rejected", stats.Rejected),
		slog.Int("overwrites", stats.Overwrites))

	return store, stats
}

// classify decides the object's form from its top-level keys. For the
// explicit-ID form it also returns the key.
func classify(top map[string]json.RawMessage) (objectForm, string) {
	if len(top) == 1 {
		for key := range top {
			if !isRecordField(key) {
				return formExplicitID, key
			}
		}
	}

	hasMeta := false
	for key := range top {
		if !isRecordField(key) {
			return formUnrecognized, ""
		}
		if key == "meta" {
			hasMeta = true
		}
	}
	if hasMeta {
		return formMetaOrientation, ""
	}
	return formUnrecognized, ""
}

func isRecordField(key string) bool {
	return key == "meta" || key == "upright" || key == "reversed"
}

func toRecord(id domain.CardID, body rawCard) domain.CardRecord {
	arcana := domain.Arcana(body.Meta.Arcana)
	if arcana != domain.ArcanaMinor {
		arcana = domain.ArcanaMajor
	}
	return domain.CardRecord{
		ID:       id,
		Titles:   copyTitles(body.Meta.Title),
		Arcana:   arcana,
		Suit:     body.Meta.Suit,
		Upright:  copyBlock(body.Upright),
		Reversed: copyBlock(body.Reversed),
	}
}

func copyTitles(titles map[string]string) map[string]string {
	out := make(map[string]string, len(titles))
	for lang, title := range titles {
		out[lang] = title
	}
	return out
}

func copyBlock(block map[string]map[string]string) domain.OrientationBlock {
	out := make(domain.OrientationBlock, len(block))
	for sphere, langs := range block {
		inner := make(map[string]string, len(langs))
		for lang, text := range langs {
			inner[lang] = text
		}
		out[sphere] = inner
	}
	return out
}
