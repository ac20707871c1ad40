package sqlite

import (
	"testing"
	"time"

	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeIsFixedWidth(t *testing.T) {
	a := formatTime(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	b := formatTime(time.Date(2025, 1, 2, 3, 4, 5, 123456789, time.UTC))

	require.Equal(t, "2025-01-02T03:04:05.000000000Z", a)
	require.Equal(t, len(a), len(b))
	require.Less(t, a, b)
}

func TestFormatTimeConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("plus2", 2*60*60)
	got := formatTime(time.Date(2025, 1, 2, 5, 0, 0, 0, loc))
	require.Equal(t, "2025-01-02T03:00:00.000000000Z", got)
}

func TestParseTimeRoundTrip(t *testing.T) {
	want := time.Date(2025, 6, 7, 8, 9, 10, 11, time.UTC)
	got, err := parseTime(formatTime(want))
	require.NoError(t, err)
	require.True(t, want.Equal(got))

	_, err = parseTime("yesterday")
	require.Error(t, err)
}

func TestEncodeListNil(t *testing.T) {
	got, err := encodeList[string](nil)
	require.NoError(t, err)
	require.Equal(t, "[]", got)
}

func TestDecodeListTolerance(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "  "},
		{"null", "null"},
		{"malformed", "{not json"},
		{"wrong shape", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeList[string](tt.raw)
			require.NotNil(t, got)
			require.Empty(t, got)
		})
	}
}

func TestDecodeListFilesAcceptsLegacyColumnKey(t *testing.T) {
	got := decodeList[snapshot.FileLocation](`[{"path":"a.go","line":3,"col":7}]`)
	require.Equal(t, []snapshot.FileLocation{{Path: "a.go", Line: 3, Column: 7}}, got)
}
