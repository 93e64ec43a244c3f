// Command shogi-view is an interactive ebiten viewer for a shogi position
// and an optional move sequence, adapted from internal/ui's Update/Draw/
// Layout game-loop shape but driving only internal/shogi and
// internal/render — no chess engine, no NNUE, no storage.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hailam/shogi-movegen/internal/render"
	"github.com/hailam/shogi-movegen/internal/sfen"
	"github.com/hailam/shogi-movegen/internal/shogi"
)

var (
	snapshot   = flag.String("sfen", sfen.StartSFEN, "initial position text snapshot")
	movesFile  = flag.String("moves", "", "optional file of whitespace-separated moves to step through")
	squareSize = flag.Int("square", 64, "pixels per square")
	mating     = flag.Bool("mating", false, "parse the snapshot as a tsume problem (attacker king optional)")
)

// viewer implements ebiten.Game over a fixed sequence of positions reached
// by replaying a move list from the initial snapshot, one ply per
// arrow-key press.
type viewer struct {
	positions []*shogi.Position
	idx       int
	size      int
	frame     *ebiten.Image
	dirty     bool
}

func newViewer(positions []*shogi.Position, size int) *viewer {
	return &viewer{positions: positions, size: size, dirty: true}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) && v.idx < len(v.positions)-1 {
		v.idx++
		v.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) && v.idx > 0 {
		v.idx--
		v.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		v.idx = 0
		v.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		v.idx = len(v.positions) - 1
		v.dirty = true
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.dirty || v.frame == nil {
		img := render.Render(v.positions[v.idx], render.Options{SquareSize: v.size})
		v.frame = ebiten.NewImageFromImage(img)
		v.dirty = false
	}
	screen.DrawImage(v.frame, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := v.size * 9
	return side, side
}

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

	positions := []*shogi.Position{pos}
	if *movesFile != "" {
		data, err := os.ReadFile(*movesFile)
		if err != nil {
			log.Fatalf("reading moves file: %v", err)
		}
		cur := pos
		for _, tok := range strings.Fields(string(data)) {
			m, err := sfen.ParseMove(tok)
			if err != nil {
				log.Fatalf("invalid move %q: %v", tok, err)
			}
			cur = cur.Clone()
			cur.Play(m)
			positions = append(positions, cur)
		}
	}

	v := newViewer(positions, *squareSize)
	side := *squareSize * 9
	ebiten.SetWindowSize(side, side)
	ebiten.SetWindowTitle("shogi-view")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
