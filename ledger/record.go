package ledger

import (
	"fmt"
	"strconv"
	"time"

	"contactledger/models"
)

// ledgerHeader is the first line of every ledger file. Field order is fixed;
// encoding/csv handles quoting of embedded delimiters and quotes.
var ledgerHeader = []string{"companyId", "companyName", "contactorName", "timestamp", "isContacted"}

func encodeRecord(rec models.ContactRecord) []string {
	return []string{
		rec.CompanyID,
		rec.CompanyName,
		rec.ContactorName,
		rec.Timestamp.UTC().Format(time.RFC3339),
		strconv.FormatBool(rec.IsContacted),
	}
}

func decodeRecord(row []string) (models.ContactRecord, error) {
	// Extra trailing columns are ignored so a future schema addition does not
	// break older builds reading the same file.
	if len(row) < len(ledgerHeader) {
		return models.ContactRecord{}, fmt.Errorf("expected %d fields, got %d", len(ledgerHeader), len(row))
	}
	ts, err := time.Parse(time.RFC3339, row[3])
	if err != nil {
		return models.ContactRecord{}, fmt.Errorf("bad timestamp %q: %v", row[3], err)
	}
	contacted, err := strconv.ParseBool(row[4])
	if err != nil {
		return models.ContactRecord{}, fmt.Errorf("bad isContacted %q: %v", row[4], err)
	}
	return models.ContactRecord{
		CompanyID:     row[0],
		CompanyName:   row[1],
		ContactorName: row[2],
		Timestamp:     ts,
		IsContacted:   contacted,
	}, nil
}

func headerMatches(row []string) bool {
	if len(row) != len(ledgerHeader) {
		return false
	}
	for i, name := range ledgerHeader {
		if row[i] != name {
			return false
		}
	}
	return true
}
