// Command shogi-render writes a PNG board diagram for a text snapshot.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hailam/shogi-movegen/internal/render"
	"github.com/hailam/shogi-movegen/internal/sfen"
)

var (
	snapshot   = flag.String("sfen", sfen.StartSFEN, "position text snapshot")
	out        = flag.String("out", "board.png", "output PNG path")
	squareSize = flag.Int("square", 64, "pixels per square")
	mating     = flag.Bool("mating", false, "parse the snapshot as a tsume problem (attacker king optional)")
)

func main() {
	flag.Parse()

	parse := sfen.Parse
	if *mating {
		parse = sfen.ParseMatingProblem
	}
	pos, err := parse(*snapshot)
	if err != nil {
		log.Fatalf("invalid snapshot: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("creating %s: %v", *out, err)
	}
	defer f.Close()

	if err := render.WritePNG(pos, f, render.Options{SquareSize: *squareSize}); err != nil {
		log.Fatalf("rendering: %v", err)
	}
	log.Printf("wrote %s", *out)
}
