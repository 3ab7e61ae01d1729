package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNaturalKey(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"pan upper-cases", &PanRecord{PanNumber: "abcde1234f"}, "ABCDE1234F"},
		{"voter upper-cases", &VoterRecord{VoterID: "xyz1234567"}, "XYZ1234567"},
		{"bill upper-cases", &BillRecord{ConsumerID: "cons-001"}, "CONS-001"},
		{"rc upper-cases", &RcRecord{RcNumber: "mh12ab1234"}, "MH12AB1234"},
		{"driving upper-cases", &DrivingLicenseRecord{DlNumber: "mh1220110012345"}, "MH1220110012345"},
		{"name pair is composite", &NameMatchRecord{Name1: "Ram Kumar", Name2: "Raam Kumar"}, "RAM KUMAR|RAAM KUMAR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.NaturalKey())
		})
	}
}

func TestNameMatchKey(t *testing.T) {
	t.Run("trims and upper-cases both names", func(t *testing.T) {
		assert.Equal(t, "RAM|RAAM", NameMatchKey("  ram ", "Raam"))
	})

	t.Run("order matters", func(t *testing.T) {
		assert.NotEqual(t, NameMatchKey("a", "b"), NameMatchKey("b", "a"))
	})
}

func TestStamp(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	rec := &PanRecord{PanNumber: "ABCDE1234F"}
	rec.Stamp(7, at)

	require.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, int64(7), rec.CreatedBy)
	assert.Equal(t, at, rec.CreatedTime())

	t.Run("each stamp mints a fresh id", func(t *testing.T) {
		prev := rec.ID
		rec.Stamp(7, at)
		assert.NotEqual(t, prev, rec.ID)
	})
}

func TestInputGet(t *testing.T) {
	in := Input{Fields: map[string]string{"pan": "ABCDE1234F"}}
	assert.Equal(t, "ABCDE1234F", in.Get("pan"))
	assert.Equal(t, "", in.Get("missing"))

	var empty Input
	assert.Equal(t, "", empty.Get("pan"))
}
