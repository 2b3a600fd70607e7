package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2030, 8, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "rfc3339", in: "2030-08-01T09:00:00Z", want: want},
		{name: "rfc3339 with fraction", in: "2030-08-01T09:00:00.000Z", want: want},
		{name: "minute precision utc", in: "2030-08-01T09:00Z", want: want},
		{name: "minute precision with offset", in: "2030-08-01T14:30+05:30", want: want},
		{name: "date only", in: "2030-08-01", wantErr: true},
		{name: "garbage", in: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	var body struct {
		Start Timestamp  `json:"start"`
		End   *Timestamp `json:"end"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"start":"2030-08-01T09:00Z","end":null}`), &body))
	assert.True(t, time.Date(2030, 8, 1, 9, 0, 0, 0, time.UTC).Equal(body.Start.Time))
	assert.Nil(t, body.End)
	assert.Nil(t, TimePtr(body.End))

	assert.Error(t, json.Unmarshal([]byte(`{"start":1785574800}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"start":"01/08/2030 09:00"}`), &body))

	out, err := json.Marshal(body.Start)
	require.NoError(t, err)
	assert.JSONEq(t, `"2030-08-01T09:00:00Z"`, string(out))
}
