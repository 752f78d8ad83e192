package ffxiah

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Fire Crystal", "fire-crystal"},
		{"Mandragora's Root", "mandragoras-root"},
		{"Hi-Potion +3", "hi-potion-3"},
		{"  spaced   out  ", "spaced-out"},
		{"snake_case_name", "snake-case-name"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.name), "name=%q", tt.name)
	}
}

func TestSlugIdempotent(t *testing.T) {
	for _, name := range []string{"Fire Crystal", "Hi-Potion +3", "Mandragora's Root"} {
		once := Slug(name)
		assert.Equal(t, once, Slug(once))
	}
}

func TestItemURL(t *testing.T) {
	assert.Equal(t, "https://www.ffxiah.com/item/4096/fire-crystal?sid=28",
		ItemURL(DefaultBaseURL, 4096, "Fire Crystal", "Asura"))

	// Trailing slash on the base collapses; an unsluggable name degrades to
	// the bare id path.
	assert.Equal(t, "https://www.ffxiah.com/item/4096/?sid=1",
		ItemURL(DefaultBaseURL+"/", 4096, "!!!", "Bahamut"))

	// Empty or unknown server omits the sid query.
	assert.Equal(t, "https://www.ffxiah.com/item/4096/fire-crystal",
		ItemURL(DefaultBaseURL, 4096, "Fire Crystal", ""))
	assert.Equal(t, "https://www.ffxiah.com/item/4096/fire-crystal",
		ItemURL(DefaultBaseURL, 4096, "Fire Crystal", "Ifrit"))
}

func TestServerID(t *testing.T) {
	assert.Equal(t, 1, ServerID("Bahamut"))
	assert.Equal(t, 28, ServerID("asura"))
	assert.Equal(t, 16, ServerID("Quetzalcoatl"))
	assert.Equal(t, 0, ServerID("Ifrit"))
	assert.Equal(t, 0, ServerID(""))
}

func TestServers(t *testing.T) {
	names := Servers()
	assert.Len(t, names, 16)
	assert.Equal(t, "Bahamut", names[0])
	assert.Equal(t, "Asura", names[len(names)-1])
}
