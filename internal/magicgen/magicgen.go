// Package magicgen independently rebuilds and verifies internal/shogi's
// rook and bishop slider attack tables, and caches the verification result
// in BadgerDB so a repeat run skips the brute-force recheck (up to 2^14
// subsets per square). The cache key holds only the slider kind and
// schemaVersion, so a change to internal/shogi's tables is not detected;
// only a forced recomputation rechecks them. Grounded on
// internal/shogi/magic.go's mask and slow-ray-casting shape, and on the
// teacher's internal/storage/storage.go badger open/Update/View pattern
// (this repository has no storage.go: internal/storage keeps only the
// data-directory resolution in paths.go, which cmd/shogi-magicgen uses;
// the badger CRUD shape lives here now).
package magicgen

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/shogi-movegen/internal/shogi"
)

// schemaVersion changes whenever the verification method changes shape,
// invalidating any cached result computed under an earlier version.
const schemaVersion = 1

// Report is the outcome of verifying one slider kind's attack table against
// an independently computed slow ray-cast, for every square and every
// occupancy subset of that square's relevant-blocker mask.
type Report struct {
	Kind       string   `json:"kind"`
	Squares    int      `json:"squares"`
	Subsets    int      `json:"subsets"`
	Mismatches []string `json:"mismatches"`
	FromCache  bool     `json:"-"`
}

// OK reports whether verification found zero mismatches.
func (r Report) OK() bool { return len(r.Mismatches) == 0 }

func rookMask(sq shogi.Square) shogi.BitBoard {
	var m shogi.BitBoard
	f, r := sq.File(), sq.Rank()
	for rr := shogi.Rank(1); rr < 8; rr++ {
		if rr != r {
			m = m.Set(shogi.NewSquare(f, rr))
		}
	}
	for ff := shogi.File(1); ff < 8; ff++ {
		if ff != f {
			m = m.Set(shogi.NewSquare(ff, r))
		}
	}
	return m
}

func bishopMask(sq shogi.Square) shogi.BitBoard {
	var m shogi.BitBoard
	f, r := int(sq.File()), int(sq.Rank())
	for _, d := range [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		ff, rr := f+d[0], r+d[1]
		for ff >= 1 && ff <= 7 && rr >= 1 && rr <= 7 {
			m = m.Set(shogi.NewSquare(shogi.File(ff), shogi.Rank(rr)))
			ff += d[0]
			rr += d[1]
		}
	}
	return m
}

func slowSlide(sq shogi.Square, occ shogi.BitBoard, dirs [][2]int) shogi.BitBoard {
	var att shogi.BitBoard
	f, r := int(sq.File()), int(sq.Rank())
	for _, d := range dirs {
		ff, rr := f+d[0], r+d[1]
		for ff >= 0 && ff <= 8 && rr >= 0 && rr <= 8 {
			to := shogi.NewSquare(shogi.File(ff), shogi.Rank(rr))
			att = att.Set(to)
			if occ.Has(to) {
				break
			}
			ff += d[0]
			rr += d[1]
		}
	}
	return att
}

var (
	rookDirs   = [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// VerifyRook rebuilds rook attacks for every square/occupancy pair from
// scratch and diffs them against shogi.RookAttacks.
func VerifyRook() Report {
	return verify("rook", rookMask, func(sq shogi.Square, occ shogi.BitBoard) shogi.BitBoard {
		return slowSlide(sq, occ, rookDirs)
	}, shogi.RookAttacks)
}

// VerifyBishop rebuilds bishop attacks for every square/occupancy pair from
// scratch and diffs them against shogi.BishopAttacks.
func VerifyBishop() Report {
	return verify("bishop", bishopMask, func(sq shogi.Square, occ shogi.BitBoard) shogi.BitBoard {
		return slowSlide(sq, occ, bishopDirs)
	}, shogi.BishopAttacks)
}

func verify(kind string, maskFn func(shogi.Square) shogi.BitBoard, slowFn func(shogi.Square, shogi.BitBoard) shogi.BitBoard, fastFn func(shogi.Square, shogi.BitBoard) shogi.BitBoard) Report {
	r := Report{Kind: kind}
	for sq := shogi.Square(0); sq < 81; sq++ {
		mask := maskFn(sq)
		r.Squares++
		for _, occ := range mask.Subsets() {
			r.Subsets++
			want := slowFn(sq, occ)
			got := fastFn(sq, occ)
			if !want.Equal(got) {
				r.Mismatches = append(r.Mismatches, fmt.Sprintf("%s sq=%d occ={%d,%d}", kind, sq, occ.Lo, occ.Hi))
			}
		}
	}
	return r
}

// Cache persists verification reports in BadgerDB, keyed by slider kind and
// schema version, so a repeat run can skip redoing the brute-force subset
// sweep. The key does not depend on the contents of magic.go's tables, so a
// stored report is returned even after those tables change.
type Cache struct {
	db *badger.DB
}

// Open opens (creating if needed) a badger cache rooted at dir.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func cacheKey(kind string) []byte {
	return []byte(fmt.Sprintf("magicgen/v%d/%s", schemaVersion, kind))
}

// Load returns a previously stored report for kind, if present.
func (c *Cache) Load(kind string) (Report, bool, error) {
	var r Report
	found := false
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(kind))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if found {
		r.FromCache = true
	}
	return r, found, err
}

// Store saves r under its kind.
func (c *Cache) Store(r Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey(r.Kind), data)
	})
}

// VerifyCached returns the cached report for kind if one exists, otherwise
// computes it with compute, stores it, and returns the fresh result.
func (c *Cache) VerifyCached(kind string, compute func() Report) (Report, error) {
	if cached, ok, err := c.Load(kind); err != nil {
		return Report{}, err
	} else if ok {
		return cached, nil
	}
	r := compute()
	if err := c.Store(r); err != nil {
		return r, err
	}
	return r, nil
}
