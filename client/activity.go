package client

import (
	"strings"
)

// ActivityType selects how the activity is phrased on the profile.
type ActivityType int

const (
	Playing   ActivityType = 0
	Listening ActivityType = 2
	Watching  ActivityType = 3
	Competing ActivityType = 5
)

// Activity is the Rich Presence status shown on the user's profile.
// Unset fields are never serialized.
type Activity struct {
	State      string       `json:"state,omitempty"`
	Details    string       `json:"details,omitempty"`
	Timestamps *Timestamps  `json:"timestamps,omitempty"`
	Party      *Party       `json:"party,omitempty"`
	Assets     *Assets      `json:"assets,omitempty"`
	Secrets    *Secrets     `json:"secrets,omitempty"`
	Buttons    []Button     `json:"buttons,omitempty"`
	Type       ActivityType `json:"type,omitempty"`
}

// Timestamps bound the elapsed / remaining time display, as unix epoch
// seconds.
type Timestamps struct {
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

// Party describes the player group, size is [current, max].
type Party struct {
	ID   string `json:"id,omitempty"`
	Size []int  `json:"size,omitempty"`
}

// Assets are the art assets and their hover texts.
type Assets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
	SmallImage string `json:"small_image,omitempty"`
	SmallText  string `json:"small_text,omitempty"`
}

// Secrets carry the join/spectate/match handshake secrets.
type Secrets struct {
	Join     string `json:"join,omitempty"`
	Spectate string `json:"spectate,omitempty"`
	Match    string `json:"match,omitempty"`
}

// Button is a clickable link under the activity. An activity may carry
// at most two.
type Button struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

const (
	maxButtons     = 2
	maxButtonLabel = 32
	maxButtonURL   = 512
)

// sanitizeButtons drops buttons Discord would reject and caps the slice
// at two. An empty result is nil so the field is omitted entirely.
func sanitizeButtons(buttons []Button) []Button {
	var valid []Button

	for _, b := range buttons {
		label := strings.TrimSpace(b.Label)
		url := strings.TrimSpace(b.URL)

		if label == "" || len(label) > maxButtonLabel {
			continue
		}

		if url == "" || len(url) > maxButtonURL {
			continue
		}

		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			continue
		}

		valid = append(valid, Button{Label: label, URL: url})
		if len(valid) == maxButtons {
			break
		}
	}

	return valid
}
