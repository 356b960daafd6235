package main

import (
	"flag"
	"log"
	"os"

	"tilelife/internal/lifeio"
	"tilelife/pkg/core"
)

func main() {
	width := flag.Int("w", 256, "grid width")
	height := flag.Int("h", 256, "grid height")
	density := flag.Float64("density", 0.25, "probability that a cell starts alive")
	seed := flag.Int64("seed", 42, "seed for the pattern")
	out := flag.String("out", "", "output file (stdout when empty)")
	flag.Parse()

	g, err := core.NewGrid(*width, *height)
	if err != nil {
		log.Fatal(err)
	}
	core.NewRNG(*seed).FillDensity(g.Cells(), *density)

	if *out == "" {
		err = lifeio.Write(os.Stdout, g)
	} else {
		err = lifeio.WriteFile(*out, g)
	}
	if err != nil {
		log.Fatal(err)
	}
}
