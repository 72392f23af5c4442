// cmd/ingest/main.go
// Contact ledger bulk importer
// Usage: go run cmd/ingest/main.go --csv /path/to/companies.csv --contactor "J. Smith"
//
// Reads a CSV with columns companyId,companyName and registers each company
// as contacted. Companies that already have an active record are skipped by
// the store's own duplicate handling, so re-running an import is safe.

package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"

	"contactledger/ledger"
)

func main() {
	csvPath := flag.String("csv", "", "path to the companyId,companyName CSV to import")
	contactor := flag.String("contactor", "", "name recorded as the contactor for every imported row")
	dataDir := flag.String("data", "./data", "ledger data directory")
	flag.Parse()

	if *csvPath == "" || *contactor == "" {
		log.Fatal("--csv and --contactor are required")
	}

	store, err := ledger.Open(*dataDir)
	if err != nil {
		log.Fatalf("Error opening contact ledger in %s: %v", *dataDir, err)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Error opening %s: %v", *csvPath, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var line, imported, duplicate, skipped int
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error reading %s: %v", *csvPath, err)
		}
		line++
		if line == 1 && len(row) > 0 && row[0] == "companyId" {
			continue // header
		}
		if len(row) < 2 {
			log.Printf("Skipping line %d: expected companyId,companyName", line)
			skipped++
			continue
		}

		if store.Lookup(row[0]).IsContacted {
			duplicate++
			continue
		}
		if _, err := store.Register(row[0], row[1], *contactor); err != nil {
			log.Printf("Skipping line %d: %v", line, err)
			skipped++
			continue
		}
		imported++
	}

	log.Printf("Import complete: %d registered, %d already contacted, %d skipped", imported, duplicate, skipped)
}
