package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/tomopfuku/dirvmp"
	"golang.org/x/exp/rand"
)

func parseAlpha(s string) []float64 {
	fields := strings.Split(s, ",")
	alpha := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			fmt.Println("could not parse concentration entry", f)
			os.Exit(0)
		}
		alpha[i] = v
	}
	return alpha
}

func main() {
	alphaArg := flag.String("a", "1,1,1", "comma-separated prior concentration vector")
	nArg := flag.Int("n", 10000, "number of samples to draw")
	seedArg := flag.Uint64("seed", 0, "random seed (0 uses the current time)")
	profArg := flag.String("prof", "", "write a CPU profile to this file")
	flag.Parse()
	if *profArg != "" {
		f, err := os.Create(*profArg)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	seed := *seedArg
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewSource(seed)

	alpha := parseAlpha(*alphaArg)
	node, err := dirvmp.InitDirichlet(alpha, nil, "p")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(node)
	fmt.Println("E[log p] =", node.U[0].Data)

	k := node.Categories
	mean := make([]float64, k)
	start := time.Now()
	for i := 0; i < *nArg; i++ {
		s, err := node.Random(src)
		if err != nil {
			log.Fatal(err)
		}
		for j, v := range s.Data {
			mean[j] += v
		}
	}
	elapsed := time.Since(start)
	total := 0.
	for _, a := range alpha {
		total += a
	}
	for j := range mean {
		mean[j] /= float64(*nArg)
	}
	fmt.Println("DREW", *nArg, "SAMPLES IN", elapsed)
	fmt.Println("empirical mean:", mean)
	expect := make([]float64, k)
	for j, a := range alpha {
		expect[j] = a / total
	}
	fmt.Println("expected mean: ", expect)
}
