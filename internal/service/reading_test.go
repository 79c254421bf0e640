package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorward/dailytarot/internal/catalog"
	"github.com/victorward/dailytarot/internal/content"
	"github.com/victorward/dailytarot/internal/domain"
	"github.com/victorward/dailytarot/internal/meanings"
	"github.com/victorward/dailytarot/internal/session"
)

const testMeanings = `{
	"7ofcups": {
		"meta": {"arcana": "minor", "suit": "cups", "title": {"ru": "Семёрка Кубков"}},
		"upright": {"general": {"ru": "Выбор."}, "love": {"ru": "Мечты."}},
		"reversed": {"general": {"ru": "Ясность."}, "love": {"ru": "Трезвый взгляд."}}
	}
}
{
	"themagician": {
		"meta": {"arcana": "major", "title": {"ru": "Маг"}},
		"upright": {"general": {"ru": "Воля."}},
		"reversed": {"general": {"ru": "Обман."}}
	}
}
{
	"aceofwands": {
		"meta": {"arcana": "minor", "suit": "wands", "title": {"ru": "Туз Жезлов"}},
		"upright": {"general": {"ru": "Начало."}},
		"reversed": {"general": {"ru": "Задержка."}}
	}
}`

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// cardPNG builds a tiny image with a distinct top-left pixel so rotation
// is observable in end-to-end assertions.
func cardPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 1, color.NRGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fixture struct {
	readings *ReadingService
	engine   *session.Engine
	catalog  *catalog.Catalog
	resolver *meanings.Resolver
}

func newFixture(t *testing.T, assets AssetSource, fsys fstest.MapFS) *fixture {
	t.Helper()

	cat, err := catalog.New(fsys, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	store, _ := content.Load([]byte(testMeanings), discard())
	resolver := meanings.NewResolver(store, discard())
	engine := session.NewEngine(cat, session.ClockFunc(func() string { return "2026-08-28" }), discard())

	if assets == nil {
		assets = NewFSAssetSource(fsys)
	}
	return &fixture{
		readings: NewReadingService(engine, cat, resolver, assets, "ru", discard()),
		engine:   engine,
		catalog:  cat,
		resolver: resolver,
	}
}

func testAssets(t *testing.T) fstest.MapFS {
	t.Helper()
	img := cardPNG(t)
	return fstest.MapFS{
		"7ofcups.png":     &fstest.MapFile{Data: img},
		"themagician.png": &fstest.MapFile{Data: img},
		"aceofwands.png":  &fstest.MapFile{Data: img},
	}
}

func TestSelectDomain(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, testAssets(t))

	offer, err := f.readings.SelectDomain(context.Background(), 7, "love")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", offer.Day)
	assert.Equal(t, domain.SphereLove, offer.Sphere)
	assert.Equal(t, 3, offer.Slots)
}

func TestSelectDomainInvalidSphere(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, testAssets(t))

	_, err := f.readings.SelectDomain(context.Background(), 7, "careers")
	assert.ErrorIs(t, err, domain.ErrInvalidSphere)
}

func TestPickRevealsTheChosenCard(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, testAssets(t))
	ctx := context.Background()

	_, err := f.readings.SelectDomain(ctx, 7, "love")
	require.NoError(t, err)

	// Peek at the dealt choices so the reveal can be checked exactly.
	sess, err := f.engine.Current(7)
	require.NoError(t, err)
	choice := sess.Choices[1]
	wantAsset, err := f.catalog.AssetName(choice.AssetIndex)
	require.NoError(t, err)
	wantID := catalog.CardIDForAsset(wantAsset)
	wantTitle, wantBody := f.resolver.Resolve(wantID, choice.Orientation(), domain.SphereLove, "ru")

	reveal, err := f.readings.Pick(ctx, 7, 1)
	require.NoError(t, err)

	assert.Equal(t, wantAsset, reveal.Asset, "reveal must use exactly choices[1]'s asset")
	assert.Equal(t, wantID, reveal.CardID)
	assert.Equal(t, choice.Orientation(), reveal.Orientation)
	assert.Equal(t, wantTitle, reveal.Title)
	assert.Equal(t, wantBody, reveal.Body)
	assert.NotEqual(t, meanings.PlaceholderBody, reveal.Body,
		"every test card has love/general ru text")

	// The image is rotated 180° iff the draw was reversed: the red
	// top-left marker moves to the bottom-right.
	decoded, _, err := image.Decode(bytes.NewReader(reveal.Image))
	require.NoError(t, err)
	red := color.NRGBA{R: 255, A: 255}
	at := func(x, y int) color.Color { return color.NRGBAModel.Convert(decoded.At(x, y)) }
	if choice.Reversed {
		assert.Equal(t, red, at(1, 1))
	} else {
		assert.Equal(t, red, at(0, 0))
	}
}

func TestPickTwiceFailsWithoutChangingOutcome(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, testAssets(t))
	ctx := context.Background()

	_, err := f.readings.SelectDomain(ctx, 7, "work")
	require.NoError(t, err)

	first, err := f.readings.Pick(ctx, 7, 0)
	require.NoError(t, err)

	_, err = f.readings.Pick(ctx, 7, 2)
	assert.ErrorIs(t, err, domain.ErrAlreadyPicked)

	again, err := f.readings.Reveal(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, first.CardID, again.CardID)
	assert.Equal(t, first.Orientation, again.Orientation)
}

type failingSource struct{}

func (failingSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	return nil, errors.New("cdn unreachable")
}

func TestDeliveryFailureKeepsPickRecorded(t *testing.T) {
	t.Parallel()

	fsys := testAssets(t)
	f := newFixture(t, failingSource{}, fsys)
	ctx := context.Background()

	_, err := f.readings.SelectDomain(ctx, 7, "general")
	require.NoError(t, err)

	_, err = f.readings.Pick(ctx, 7, 0)
	require.Error(t, err, "delivery fails when the asset source is down")

	// The pick itself is committed: retrying Pick is rejected...
	_, err = f.readings.Pick(ctx, 7, 0)
	assert.ErrorIs(t, err, domain.ErrAlreadyPicked)

	// ...and a healthy service over the same engine re-delivers the card.
	healthy := NewReadingService(f.engine, f.catalog, f.resolver, NewFSAssetSource(fsys), "ru", discard())
	reveal, err := healthy.Reveal(ctx, 7)
	require.NoError(t, err)
	assert.NotEmpty(t, reveal.Image)
}

func TestRevealBeforePick(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, testAssets(t))
	ctx := context.Background()

	_, err := f.readings.Reveal(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	_, err = f.readings.SelectDomain(ctx, 7, "health")
	require.NoError(t, err)
	_, err = f.readings.Reveal(ctx, 7)
	assert.ErrorIs(t, err, ErrNothingPicked)
}

func TestFSAssetSourceFetchError(t *testing.T) {
	t.Parallel()

	source := NewFSAssetSource(fstest.MapFS{})
	_, err := source.Fetch(context.Background(), "missing.png")
	assert.ErrorIs(t, err, ErrAssetFetch)
}
