// Command shogi-magicgen independently rebuilds and verifies internal/shogi's
// slider attack tables, caching the result in BadgerDB between runs.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hailam/shogi-movegen/internal/magicgen"
	"github.com/hailam/shogi-movegen/internal/storage"
)

var (
	dbDir = flag.String("db", "", "badger cache directory (defaults to the platform data dir)")
	force = flag.Bool("force", false, "ignore any cached report and recompute")
)

func main() {
	flag.Parse()

	dir := *dbDir
	if dir == "" {
		d, err := storage.GetDatabaseDir()
		if err != nil {
			log.Fatalf("resolving cache dir: %v", err)
		}
		dir = d
	}

	cache, err := magicgen.Open(dir)
	if err != nil {
		log.Fatalf("opening magicgen cache: %v", err)
	}
	defer cache.Close()

	ok := true
	for _, kind := range []string{"rook", "bishop"} {
		compute := magicgen.VerifyRook
		if kind == "bishop" {
			compute = magicgen.VerifyBishop
		}
		if *force {
			r := compute()
			if err := cache.Store(r); err != nil {
				log.Fatalf("storing %s report: %v", kind, err)
			}
			report(r)
			ok = ok && r.OK()
			continue
		}
		r, err := cache.VerifyCached(kind, compute)
		if err != nil {
			log.Fatalf("verifying %s: %v", kind, err)
		}
		report(r)
		ok = ok && r.OK()
	}

	if !ok {
		log.Fatal("slider attack table verification found mismatches")
	}
}

func report(r magicgen.Report) {
	cached := ""
	if r.FromCache {
		cached = " (cached)"
	}
	fmt.Printf("%-7s squares=%d subsets=%d mismatches=%d%s\n", r.Kind, r.Squares, r.Subsets, len(r.Mismatches), cached)
	for _, m := range r.Mismatches {
		fmt.Println("  ", m)
	}
}
