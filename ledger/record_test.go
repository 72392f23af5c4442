package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactledger/models"
)

func TestRecordRoundTrip(t *testing.T) {
	rec := models.ContactRecord{
		CompanyID:     "42",
		CompanyName:   `Acme "Holdings", Ltd`,
		ContactorName: "Smith, J.",
		Timestamp:     time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		IsContacted:   true,
	}

	got, err := decodeRecord(encodeRecord(rec))
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestDecodeRecord(t *testing.T) {
	t.Run("false flag parses", func(t *testing.T) {
		rec, err := decodeRecord([]string{"7", "Beta Co", "A. Jones", "2026-01-02T03:04:05Z", "false"})
		require.NoError(t, err)
		assert.False(t, rec.IsContacted)
	})

	t.Run("extra columns are ignored", func(t *testing.T) {
		rec, err := decodeRecord([]string{"7", "Beta Co", "A. Jones", "2026-01-02T03:04:05Z", "true", "future-field"})
		require.NoError(t, err)
		assert.Equal(t, "Beta Co", rec.CompanyName)
	})

	t.Run("short row rejected", func(t *testing.T) {
		_, err := decodeRecord([]string{"7", "Beta Co"})
		assert.Error(t, err)
	})

	t.Run("bad timestamp rejected", func(t *testing.T) {
		_, err := decodeRecord([]string{"7", "Beta Co", "A. Jones", "yesterday", "true"})
		assert.Error(t, err)
	})

	t.Run("bad flag rejected", func(t *testing.T) {
		_, err := decodeRecord([]string{"7", "Beta Co", "A. Jones", "2026-01-02T03:04:05Z", "maybe"})
		assert.Error(t, err)
	})
}

func TestHeaderMatches(t *testing.T) {
	assert.True(t, headerMatches([]string{"companyId", "companyName", "contactorName", "timestamp", "isContacted"}))
	assert.False(t, headerMatches([]string{"companyId", "companyName", "contactorName", "timestamp"}))
	assert.False(t, headerMatches([]string{"id", "name", "contactor", "time", "contacted"}))
}
