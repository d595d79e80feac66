// Command replay feeds a textual query stream through the ledger engine and
// prints the result array, one entry per query, as JSON.
//
// Input is one query per line, whitespace separated, e.g.
//
//	CREATE_ACCOUNT 1 acc1
//	DEPOSIT 3 acc1 100
//	PAY 4 acc1 50
//
// Blank lines and lines starting with # are skipped.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/punchamoorthee/bankops/internal/bank"
)

var (
	inputPath  string
	outputPath string
	trace      bool
)

func init() {
	flag.StringVar(&inputPath, "input", "", "query file, one operation per line (defaults to stdin)")
	flag.StringVar(&outputPath, "output", "", "write the result array to this file instead of stdout")
	flag.BoolVar(&trace, "trace", false, "log every query with its result")
}

func main() {
	flag.Parse()

	in := os.Stdin
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			log.Fatalf("open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	engine := bank.New()
	results := []string{}
	skipped := 0
	start := time.Now()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		req, err := bank.ParseRequest(strings.Fields(line))
		if err != nil {
			skipped++
			log.Printf("skipping query: %v", err)
			continue
		}
		result := bank.Dispatch(engine, req)
		if trace {
			log.Printf("%s -> %q", line, result)
		}
		results = append(results, result)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		log.Fatalf("write results: %v", err)
	}

	log.Printf("replayed %d queries (%d skipped) in %s", len(results), skipped, time.Since(start))
}
