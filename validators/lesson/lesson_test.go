package lessonValidator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateVideoLink(t *testing.T) {
	cases := []struct {
		name string
		link string
		ok   bool
	}{
		{"empty link is allowed", "", true},
		{"bare youtube host", "https://youtube.com/watch?v=abc123", true},
		{"www youtube host", "https://www.youtube.com/watch?v=abc123", true},
		{"mobile youtube host", "https://m.youtube.com/watch?v=abc123", true},
		{"uppercase host is normalized", "https://WWW.YouTube.COM/watch?v=abc123", true},
		{"vimeo is rejected", "https://vimeo.com/123456", false},
		{"youtube lookalike is rejected", "https://youtube.com.evil.example/watch", false},
		{"shortener is rejected", "https://youtu.be/abc123", false},
		{"hostless path is rejected", "watch?v=abc123", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateVideoLink(tc.link)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
