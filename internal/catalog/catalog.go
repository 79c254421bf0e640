// Package catalog enumerates the card artwork backing the deck and
// provides the three-card draw.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/victorward/dailytarot/internal/domain"
)

// drawSize is the number of face-down cards offered per session.
const drawSize = 3

var (
	// ErrCatalogEmpty is returned when no card assets are found at all.
	// Fatal at startup: no cards, no product.
	ErrCatalogEmpty = errors.New("card catalog is empty")

	// ErrInsufficientCards is returned when fewer assets exist than one
	// draw needs.
	ErrInsufficientCards = errors.New("not enough cards for a draw")
)

// Catalog holds the sorted asset list, immutable after New. The random
// source is guarded by a mutex because draws for different users may run
// concurrently.
type Catalog struct {
	assets []string

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a catalog from the card images found in fsys. Assets are
// sorted for a stable index order. rng may be nil, in which case a
// time-seeded source is used; tests inject a fixed seed.
func New(fsys fs.FS, rng *rand.Rand) (*Catalog, error) {
	var assets []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isCardImage(p) {
			assets = append(assets, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning card assets: %w", err)
	}
	if len(assets) == 0 {
		return nil, ErrCatalogEmpty
	}
	sort.Strings(assets)

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Catalog{assets: assets, rng: rng}, nil
}

func isCardImage(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// Len returns the number of assets.
func (c *Catalog) Len() int {
	return len(c.assets)
}

// List returns the asset names in index order.
func (c *Catalog) List() []string {
	out := make([]string, len(c.assets))
	copy(out, c.assets)
	return out
}

// AssetName returns the asset at the given draw index.
func (c *Catalog) AssetName(index int) (string, error) {
	if index < 0 || index >= len(c.assets) {
		return "", fmt.Errorf("asset index %d out of range [0,%d)", index, len(c.assets))
	}
	return c.assets[index], nil
}

// DrawThree samples three distinct asset indices uniformly without
// replacement, each independently reversed with probability 0.5.
func (c *Catalog) DrawThree() ([drawSize]domain.DrawChoice, error) {
	var draw [drawSize]domain.DrawChoice
	if len(c.assets) < drawSize {
		return draw, ErrInsufficientCards
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	perm := c.rng.Perm(len(c.assets))
	for i := 0; i < drawSize; i++ {
		draw[i] = domain.DrawChoice{
			AssetIndex: perm[i],
			Reversed:   c.rng.Float64() < 0.5,
		}
	}
	return draw, nil
}

// CardIDForAsset maps an asset filename to its content CardID: the base
// name with the extension and an _upright/_reversed suffix stripped,
// lowercased. "7ofcups_upright.jpg" → "7ofcups".
func CardIDForAsset(name string) domain.CardID {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.ToLower(base)
	base = strings.TrimSuffix(base, "_upright")
	base = strings.TrimSuffix(base, "_reversed")
	return domain.CardID(base)
}
