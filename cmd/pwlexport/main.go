// Command pwlexport prints the PWL source text of a saved waveform document
// and can optionally sample the waveform to CSV for inspection.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"pwl-editor/internal/document"
	"pwl-editor/internal/spice"
	"pwl-editor/internal/units"
	"pwl-editor/internal/waveform"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	samples := flag.Int("samples", 0, "number of evenly spaced samples to write as CSV")
	out := flag.String("out", "", "CSV output path (defaults to stdout)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-samples N] [-out file.csv] document.json\n", os.Args[0])
		os.Exit(2)
	}

	doc, err := document.Load(flag.Arg(0))
	if err != nil {
		log.Fatalf("load %s: %v", flag.Arg(0), err)
	}

	points := doc.Breakpoints()
	kind := units.ParseSourceKind(doc.SourceType)
	fmt.Printf("%s source: %s\n", kind, spice.Format(points))

	if *samples > 1 {
		if err := writeSamples(waveform.NewSet(points...), *samples, *out); err != nil {
			log.Fatalf("write samples: %v", err)
		}
	}
}

// writeSamples evaluates the waveform at n evenly spaced times across the
// breakpoint range and writes (time, value) rows as CSV.
func writeSamples(set *waveform.Set, n int, path string) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	times := set.Times()
	t0, t1 := times[0], times[len(times)-1]
	step := (t1 - t0) / float64(n-1)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "value"}); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		t := t0 + float64(i)*step
		row := []string{
			strconv.FormatFloat(t, 'g', 6, 64),
			strconv.FormatFloat(set.Evaluate(t), 'g', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
