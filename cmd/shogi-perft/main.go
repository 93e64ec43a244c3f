// Command shogi-perft counts legal-move tree leaves from a text snapshot,
// the standard correctness harness for internal/shogi's move generator.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sort"

	"github.com/hailam/shogi-movegen/internal/perft"
	"github.com/hailam/shogi-movegen/internal/sfen"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	depth      = flag.Int("depth", 1, "search depth in plies")
	snapshot   = flag.String("sfen", sfen.StartSFEN, "position text snapshot")
	divide     = flag.Bool("divide", false, "print a per-root-move breakdown")
	mating     = flag.Bool("mating", false, "parse the snapshot as a tsume problem (attacker king optional)")
)

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	parse := sfen.Parse
	if *mating {
		parse = sfen.ParseMatingProblem
	}
	pos, err := parse(*snapshot)
	if err != nil {
		log.Fatalf("invalid snapshot: %v", err)
	}

	if *divide {
		counts := perft.Divide(pos, *depth)
		moves := make([]string, 0, len(counts))
		for m := range counts {
			moves = append(moves, m)
		}
		sort.Strings(moves)
		var total int64
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, counts[m])
			total += counts[m]
		}
		fmt.Printf("\nnodes: %d\n", total)
		return
	}

	fmt.Println(perft.Count(pos, *depth))
}
