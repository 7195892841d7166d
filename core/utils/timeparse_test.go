package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoerceTime(t *testing.T) {
	ref := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		input  any
		want   time.Time
		wantOK bool
	}{
		{
			name:   "native time",
			input:  ref,
			want:   ref,
			wantOK: true,
		},
		{
			name:   "time pointer",
			input:  &ref,
			want:   ref,
			wantOK: true,
		},
		{
			name:   "nil time pointer",
			input:  (*time.Time)(nil),
			wantOK: false,
		},
		{
			name:   "zero time",
			input:  time.Time{},
			wantOK: false,
		},
		{
			name:   "rfc3339 string",
			input:  "2024-03-01T08:00:00Z",
			want:   ref,
			wantOK: true,
		},
		{
			name:   "datetime without zone",
			input:  "2024-03-01T08:00:00",
			want:   ref,
			wantOK: true,
		},
		{
			name:   "space separated datetime",
			input:  "2024-03-01 08:00:00",
			want:   ref,
			wantOK: true,
		},
		{
			name:   "plain date",
			input:  "2024-03-01",
			want:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "epoch milliseconds",
			input:  int64(1709280000000),
			want:   ref,
			wantOK: true,
		},
		{
			name:   "epoch seconds as float",
			input:  float64(1709280000),
			want:   ref,
			wantOK: true,
		},
		{
			name:   "epoch milliseconds as string",
			input:  "1709280000000",
			want:   ref,
			wantOK: true,
		},
		{
			name:   "json number",
			input:  json.Number("1709280000000"),
			want:   ref,
			wantOK: true,
		},
		{
			name:   "timestamp document",
			input:  map[string]any{"seconds": float64(1709280000), "nanoseconds": float64(0)},
			want:   ref,
			wantOK: true,
		},
		{
			name:   "underscored timestamp document",
			input:  map[string]any{"_seconds": float64(1709280000)},
			want:   ref,
			wantOK: true,
		},
		{
			name:   "epoch seconds as string",
			input:  "1709280000",
			want:   ref,
			wantOK: true,
		},
		{
			name:   "compact date string is not an epoch",
			input:  "20240301",
			wantOK: false,
		},
		{
			name:   "short digit run is not an epoch",
			input:  "12345",
			wantOK: false,
		},
		{
			name:   "empty string",
			input:  "",
			wantOK: false,
		},
		{
			name:   "garbage string",
			input:  "not a date",
			wantOK: false,
		},
		{
			name:   "nil",
			input:  nil,
			wantOK: false,
		},
		{
			name:   "negative epoch",
			input:  int64(-5),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceTime(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
			}
		})
	}
}
