// Command shogi-bench times move generation at increasing depths, the same
// cpuprofile-then-timed-loop shape as the teacher's UCI engine benchmark.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/hailam/shogi-movegen/internal/perft"
	"github.com/hailam/shogi-movegen/internal/sfen"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	maxDepth   = flag.Int("maxdepth", 4, "deepest ply to benchmark")
	snapshot   = flag.String("sfen", sfen.StartSFEN, "position text snapshot")
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

	pos, err := sfen.Parse(*snapshot)
	if err != nil {
		log.Fatalf("invalid snapshot: %v", err)
	}

	for depth := 1; depth <= *maxDepth; depth++ {
		start := time.Now()
		nodes := perft.Count(pos, depth)
		elapsed := time.Since(start)
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Printf("depth %d: %12d nodes in %-12s (%.0f nps)\n", depth, nodes, elapsed, nps)
	}
}
