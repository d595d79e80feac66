// Command workload generates a random query stream for the replay tool. The
// stream is valid protocol input: timestamps increase strictly, account ids
// come from a fixed pool, and an occasional jump past the 24h window forces
// transfer expiry and cashback application.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
)

const millisPerDay = int64(24 * 60 * 60 * 1000)

var (
	accounts int
	queries  int
	seed     int64
	outPath  string
)

func init() {
	flag.IntVar(&accounts, "accounts", 100, "number of accounts to create")
	flag.IntVar(&queries, "queries", 10000, "number of queries to generate after account creation")
	flag.Int64Var(&seed, "seed", 1, "RNG seed, fixed for reproducible streams")
	flag.StringVar(&outPath, "out", "", "output file (defaults to stdout)")
}

func main() {
	flag.Parse()

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	rng := rand.New(rand.NewSource(seed))
	ts := int64(1)
	account := func() string { return fmt.Sprintf("acc%d", rng.Intn(accounts)+1) }

	for i := 1; i <= accounts; i++ {
		fmt.Fprintf(w, "CREATE_ACCOUNT %d acc%d\n", ts, i)
		ts += 1 + rng.Int63n(5)
	}

	transfers := 0
	for i := 0; i < queries; i++ {
		ts += 1 + rng.Int63n(1000)
		if rng.Float64() < 0.01 {
			// Jump past the expiry/cashback window now and then.
			ts += millisPerDay + 1
		}
		id := account()
		switch rng.Intn(10) {
		case 0, 1, 2:
			fmt.Fprintf(w, "DEPOSIT %d %s %d\n", ts, id, 1+rng.Int63n(1000))
		case 3, 4:
			fmt.Fprintf(w, "PAY %d %s %d\n", ts, id, 1+rng.Int63n(500))
		case 5:
			fmt.Fprintf(w, "TRANSFER %d %s %s %d\n", ts, id, account(), 1+rng.Int63n(300))
			transfers++
		case 6:
			if transfers > 0 {
				fmt.Fprintf(w, "ACCEPT_TRANSFER %d %s transfer%d\n", ts, id, 1+rng.Intn(transfers))
			} else {
				fmt.Fprintf(w, "TOP_SPENDERS %d %d\n", ts, 1+rng.Intn(10))
			}
		case 7:
			fmt.Fprintf(w, "SCHEDULE_PAYMENT %d %s %d %d\n", ts, id, 1+rng.Int63n(200), rng.Int63n(2*millisPerDay))
		case 8:
			fmt.Fprintf(w, "TOP_ACTIVITY %d %d\n", ts, 1+rng.Intn(10))
		case 9:
			fmt.Fprintf(w, "GET_BALANCE %d %s %d\n", ts, id, ts-rng.Int63n(ts))
		}
	}

	log.Printf("generated %d accounts and %d queries (seed %d)", accounts, queries, seed)
}
