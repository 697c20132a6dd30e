package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	codec := NewPathCodec("assets", "https://cdn.example.com/assets")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"raw path", "showcase/123.mp4", "showcase/123.mp4"},
		{"leading slash", "/logo/logo.png", "logo/logo.png"},
		{"bucket prefix", "assets/audio/audio.m4a", "audio/audio.m4a"},
		{"public base url", "https://cdn.example.com/assets/background/background.mp4", "background/background.mp4"},
		{"hosted bucket url", "https://abc.example.co/storage/v1/object/public/assets/showcase/1-a.png", "showcase/1-a.png"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"surrounding whitespace", "  logo/logo.png  ", "logo/logo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codec.Canonicalize(tt.input))
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	codec := NewPathCodec("assets", "http://localhost:9000/assets")

	inputs := []string{
		"showcase/123.mp4",
		"http://localhost:9000/assets/logo/logo.png",
		"https://abc.example.co/storage/v1/object/public/assets/audio/audio.m4a",
		"/background/background.webp",
		"",
		"assets/showcase/x.gif",
	}
	for _, in := range inputs {
		once := codec.Canonicalize(in)
		assert.Equal(t, once, codec.Canonicalize(once), "input %q", in)
	}
}

func TestCanonicalizeInvertsPublicURL(t *testing.T) {
	local, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/media", "secret", 0)
	require.NoError(t, err)
	codec := NewPathCodec("assets", "http://localhost:8080/media")

	paths := []string{"logo/logo.png", "background/background.mp4", "showcase/1756500000-ab12cd34.mov"}
	for _, p := range paths {
		assert.Equal(t, p, codec.Canonicalize(local.PublicURL(p)))
	}
}
