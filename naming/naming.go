// Package naming finds human-readable names for colors by nearest neighbour
// search in Oklab space.
package naming

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"golang.org/x/image/colornames"

	"github.com/color-palette/api/colorspace"
)

// CSSThreshold is the largest squared Oklab distance (exclusive) at which a
// CSS keyword is still reported for a color.
const CSSThreshold = 0.0004

// The embedded corpus merges the CSS and X11 color names, Chirag Mehta's
// Name That Color list (CC BY 2.5), the xkcd color survey (CC0), Crayola
// crayon colors, RAL Classic and Wikipedia's list of colors (CC BY-SA),
// sorted by name. The first spelling of a name wins.
//
//go:embed colornames.json
var corpusJSON []byte

// Entry is one named color.
type Entry struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Match is the result of a name lookup. CSSName is nil unless a CSS keyword
// lies within CSSThreshold of the queried color.
type Match struct {
	Name    string  `json:"name"`
	CSSName *string `json:"cssName"`
}

type indexed struct {
	Entry
	lab colorspace.Oklab
	key string
}

// Database is an immutable name corpus plus the CSS keyword table.
type Database struct {
	corpus []indexed
	css    []indexed
}

var defaultDB = sync.OnceValue(func() *Database {
	db, err := Load(bytes.NewReader(corpusJSON))
	if err != nil {
		panic(fmt.Sprintf("naming: embedded corpus: %v", err))
	}
	return db
})

// Default returns the database built from the embedded corpus. It is built
// on first use and shared afterwards.
func Default() *Database {
	return defaultDB()
}

// Load reads a JSON array of {"name","hex"} objects.
func Load(r io.Reader) (*Database, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse color names: %w", err)
	}
	return New(entries)
}

// New builds a database from entries, keeping their order. Every hex value
// must be valid.
func New(entries []Entry) (*Database, error) {
	db := &Database{
		corpus: make([]indexed, 0, len(entries)),
		css:    cssTable(),
	}
	for i, e := range entries {
		hex, err := colorspace.ParseHex(e.Hex)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, e.Name, err)
		}
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("entry %d: empty name", i)
		}
		db.corpus = append(db.corpus, index(Entry{Name: e.Name, Hex: hex}))
	}
	return db, nil
}

func cssTable() []indexed {
	out := make([]indexed, 0, len(colornames.Names)+1)
	for _, name := range colornames.Names {
		c := colornames.Map[name]
		out = append(out, index(Entry{Name: name, Hex: fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)}))
	}
	// Added in CSS Color Level 4, absent from the SVG 1.1 keyword list.
	return append(out, index(Entry{Name: "rebeccapurple", Hex: "#663399"}))
}

func index(e Entry) indexed {
	return indexed{Entry: e, lab: colorspace.HexToOklab(e.Hex), key: normalize(e.Name)}
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// Len is the number of corpus names.
func (db *Database) Len() int { return len(db.corpus) }

// CSSLen is the number of CSS keywords.
func (db *Database) CSSLen() int { return len(db.css) }

// Lookup returns the closest corpus name for hex and, when close enough, the
// matching CSS keyword. Ties go to the entry listed first.
func (db *Database) Lookup(hex string) Match {
	q := colorspace.HexToOklab(hex)

	var m Match
	if i, _ := nearest(db.corpus, q); i >= 0 {
		m.Name = db.corpus[i].Name
	}
	if i, d := nearest(db.css, q); i >= 0 && d < CSSThreshold {
		name := db.css[i].Name
		m.CSSName = &name
	}
	return m
}

func nearest(entries []indexed, q colorspace.Oklab) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i := range entries {
		if d := colorspace.DistanceSquared(q, entries[i].lab); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// Exact resolves a color name to its hex value. CSS keywords are checked
// before the corpus; matching ignores case and whitespace.
func (db *Database) Exact(name string) (string, bool) {
	key := normalize(name)
	if key == "" {
		return "", false
	}
	for _, e := range db.css {
		if e.key == key {
			return e.Hex, true
		}
	}
	for _, e := range db.corpus {
		if e.key == key {
			return e.Hex, true
		}
	}
	return "", false
}

// Search returns up to limit corpus entries for query. Names containing the
// query come first in corpus order, followed by near misses ranked by edit
// distance.
func (db *Database) Search(query string, limit int) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return []Entry{}
	}

	out := make([]Entry, 0, limit)
	type scored struct {
		pos  int
		dist int
	}
	var fuzzy []scored
	maxDist := len(q) / 3
	if maxDist < 1 {
		maxDist = 1
	}

	for i, e := range db.corpus {
		name := strings.ToLower(e.Name)
		if strings.Contains(name, q) || strings.Contains(e.key, q) {
			if len(out) < limit {
				out = append(out, e.Entry)
			}
			continue
		}
		if d := levenshtein.ComputeDistance(q, name); d <= maxDist {
			fuzzy = append(fuzzy, scored{pos: i, dist: d})
		}
	}

	sort.SliceStable(fuzzy, func(a, b int) bool { return fuzzy[a].dist < fuzzy[b].dist })
	for _, s := range fuzzy {
		if len(out) >= limit {
			break
		}
		out = append(out, db.corpus[s.pos].Entry)
	}
	return out
}
