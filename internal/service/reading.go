// Package service orchestrates the reading flow: session transitions on
// one side, asset fetch, rendering, and meaning resolution on the other.
// State transitions happen inside the session engine's per-key locks;
// everything slow happens afterwards against an immutable snapshot.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/victorward/dailytarot/internal/catalog"
	"github.com/victorward/dailytarot/internal/domain"
	"github.com/victorward/dailytarot/internal/meanings"
	"github.com/victorward/dailytarot/internal/render"
	"github.com/victorward/dailytarot/internal/session"
)

// ErrNothingPicked is returned by Reveal when today's session exists but
// no card has been picked yet.
var ErrNothingPicked = errors.New("no card picked yet")

// DrawOffer describes the face-down cards presented after a sphere is
// selected. The choices themselves stay server-side; the transport only
// needs to render that many covered slots.
type DrawOffer struct {
	Day    string
	Sphere domain.Sphere
	Slots  int
}

// Reveal is the composed result of a successful pick: the ready-to-send
// image plus the caption text.
type Reveal struct {
	CardID      domain.CardID
	Orientation domain.Orientation
	Title       string
	Body        string
	Image       []byte
	ImageFormat string
	Asset       string
}

// ReadingService is the transport-facing facade over the reading core.
type ReadingService struct {
	engine   *session.Engine
	catalog  *catalog.Catalog
	resolver *meanings.Resolver
	assets   AssetSource
	lang     string
	logger   *slog.Logger
}

// NewReadingService creates a ReadingService. lang is the caption
// language, normally "ru".
func NewReadingService(
	engine *session.Engine,
	cat *catalog.Catalog,
	resolver *meanings.Resolver,
	assets AssetSource,
	lang string,
	logger *slog.Logger,
) *ReadingService {
	if engine == nil {
		panic("engine cannot be nil for ReadingService")
	}
	if cat == nil {
		panic("catalog cannot be nil for ReadingService")
	}
	if resolver == nil {
		panic("resolver cannot be nil for ReadingService")
	}
	if assets == nil {
		panic("assets cannot be nil for ReadingService")
	}
	if lang == "" {
		lang = "ru"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadingService{
		engine:   engine,
		catalog:  cat,
		resolver: resolver,
		assets:   assets,
		lang:     lang,
		logger:   logger.With(slog.String("component", "reading_service")),
	}
}

// SelectDomain starts or restarts today's reading for the given sphere.
func (s *ReadingService) SelectDomain(
	ctx context.Context,
	userID domain.UserID,
	rawSphere string,
) (*DrawOffer, error) {
	sphere, err := domain.ParseSphere(rawSphere)
	if err != nil {
		return nil, err
	}

	sess, err := s.engine.SelectDomain(userID, sphere)
	if err != nil {
		return nil, err
	}

	return &DrawOffer{
		Day:    sess.Key.Day,
		Sphere: sess.Sphere,
		Slots:  len(sess.Choices),
	}, nil
}

// Pick records the user's choice and composes the reveal. The pick is
// committed before any fetch or render work starts; a delivery failure
// afterwards leaves the pick recorded, so a retried Pick reports
// ErrAlreadyPicked and Reveal re-delivers the same card.
func (s *ReadingService) Pick(
	ctx context.Context,
	userID domain.UserID,
	index int,
) (*Reveal, error) {
	sess, err := s.engine.Pick(userID, index)
	if err != nil {
		return nil, err
	}
	return s.reveal(ctx, sess)
}

// Reveal re-renders today's already-picked card, the retry path after a
// delivery failure.
func (s *ReadingService) Reveal(ctx context.Context, userID domain.UserID) (*Reveal, error) {
	sess, err := s.engine.Current(userID)
	if err != nil {
		return nil, err
	}
	if !sess.HasPicked() {
		return nil, ErrNothingPicked
	}
	return s.reveal(ctx, sess)
}

// Restart discards today's session entirely.
func (s *ReadingService) Restart(ctx context.Context, userID domain.UserID) {
	s.engine.Restart(userID)
}

func (s *ReadingService) reveal(ctx context.Context, sess domain.Session) (*Reveal, error) {
	choice := sess.PickedChoice()

	asset, err := s.catalog.AssetName(choice.AssetIndex)
	if err != nil {
		return nil, err
	}

	raw, err := s.assets.Fetch(ctx, asset)
	if err != nil {
		s.logger.Error("card asset fetch failed",
			slog.Int64("user_id", int64(sess.Key.UserID)),
			slog.String("asset", asset),
			slog.String("error", err.Error()))
		return nil, err
	}

	img, format, err := render.Reveal(raw, choice.Reversed)
	if err != nil {
		s.logger.Error("card render failed",
			slog.Int64("user_id", int64(sess.Key.UserID)),
			slog.String("asset", asset),
			slog.String("error", err.Error()))
		return nil, err
	}

	cardID := catalog.CardIDForAsset(asset)
	title, body := s.resolver.Resolve(cardID, choice.Orientation(), sess.Sphere, s.lang)

	s.logger.Info("card revealed",
		slog.Int64("user_id", int64(sess.Key.UserID)),
		slog.String("card_id", string(cardID)),
		slog.String("orientation", string(choice.Orientation())),
		slog.String("sphere", string(sess.Sphere)))

	return &Reveal{
		CardID:      cardID,
		Orientation: choice.Orientation(),
		Title:       title,
		Body:        body,
		Image:       img,
		ImageFormat: format,
		Asset:       asset,
	}, nil
}
