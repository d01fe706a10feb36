package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr error
	}{
		{name: "calendar date", input: "2025-01-11", want: Date{2025, time.January, 11}},
		{name: "timestamp keeps date part", input: "2025-01-13T22:15:00Z", want: Date{2025, time.January, 13}},
		{name: "empty string", input: "", wantErr: ErrInvalidDate},
		{name: "garbage", input: "yesterday", wantErr: ErrInvalidDate},
		{name: "out of range month", input: "2025-13-01", wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateStringAndOrder(t *testing.T) {
	started := Date{2024, time.March, 5}
	completed := Date{2024, time.November, 20}

	assert.Equal(t, "2024-03-05", started.String())
	assert.True(t, started.Before(completed))
	assert.False(t, completed.Before(started))
	assert.Equal(t, started, DateOf(started.Time()))
}

func TestDateUnmarshalRejectsNonString(t *testing.T) {
	var d Date
	assert.ErrorIs(t, d.UnmarshalJSON([]byte(`20250101`)), ErrInvalidDate)
}
