package client

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityStateOnly(t *testing.T) {
	data, err := json.Marshal(Activity{State: "foo"})
	require.NoError(t, err)

	assert.Equal(t, `{"state":"foo"}`, string(data))
}

func TestActivityEmptyButtonsOmitted(t *testing.T) {
	data, err := json.Marshal(Activity{State: "foo", Buttons: []Button{}})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "buttons")
}

func TestActivityUnsetFieldsOmitted(t *testing.T) {
	data, err := json.Marshal(Activity{})
	require.NoError(t, err)

	assert.Equal(t, `{}`, string(data))
}

func TestActivityFull(t *testing.T) {
	activity := Activity{
		State:      "In a match",
		Details:    "Ranked",
		Timestamps: &Timestamps{Start: 100, End: 200},
		Party:      &Party{ID: "p1", Size: []int{1, 4}},
		Assets: &Assets{
			LargeImage: "map",
			LargeText:  "The Map",
			SmallImage: "rank",
			SmallText:  "Gold",
		},
		Secrets: &Secrets{Join: "j", Spectate: "s", Match: "m"},
		Buttons: []Button{{Label: "Site", URL: "https://example.com"}},
		Type:    Competing,
	}

	data, err := json.Marshal(activity)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"state": "In a match",
		"details": "Ranked",
		"timestamps": {"start": 100, "end": 200},
		"party": {"id": "p1", "size": [1, 4]},
		"assets": {"large_image": "map", "large_text": "The Map", "small_image": "rank", "small_text": "Gold"},
		"secrets": {"join": "j", "spectate": "s", "match": "m"},
		"buttons": [{"label": "Site", "url": "https://example.com"}],
		"type": 5
	}`, string(data))
}

func TestSanitizeButtons(t *testing.T) {
	tests := []struct {
		name string
		in   []Button
		want []Button
	}{
		{
			name: "empty slice",
			in:   []Button{},
			want: nil,
		},
		{
			name: "blank label dropped",
			in:   []Button{{Label: "  ", URL: "https://example.com"}},
			want: nil,
		},
		{
			name: "non http url dropped",
			in:   []Button{{Label: "x", URL: "ftp://example.com"}},
			want: nil,
		},
		{
			name: "oversized label dropped",
			in:   []Button{{Label: strings.Repeat("a", 33), URL: "https://example.com"}},
			want: nil,
		},
		{
			name: "oversized url dropped",
			in:   []Button{{Label: "x", URL: "https://" + strings.Repeat("a", 512)}},
			want: nil,
		},
		{
			name: "trimmed and capped at two",
			in: []Button{
				{Label: " one ", URL: " https://one.example "},
				{Label: "two", URL: "http://two.example"},
				{Label: "three", URL: "https://three.example"},
			},
			want: []Button{
				{Label: "one", URL: "https://one.example"},
				{Label: "two", URL: "http://two.example"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeButtons(tt.in))
		})
	}
}
