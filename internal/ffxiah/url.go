// Package ffxiah builds FFXIAH item URLs and fetches item pages.
package ffxiah

import (
	"fmt"
	"strings"
)

// DefaultBaseURL is the public FFXIAH site.
const DefaultBaseURL = "https://www.ffxiah.com"

// servers maps server names to the sid the site partitions prices by.
var servers = []struct {
	Name string
	ID   int
}{
	{"Bahamut", 1},
	{"Shiva", 2},
	{"Phoenix", 5},
	{"Carbuncle", 6},
	{"Fenrir", 7},
	{"Sylph", 8},
	{"Valefor", 9},
	{"Leviathan", 11},
	{"Odin", 12},
	{"Quetzalcoatl", 16},
	{"Siren", 17},
	{"Ragnarok", 20},
	{"Cerberus", 23},
	{"Bismarck", 25},
	{"Lakshmi", 27},
	{"Asura", 28},
}

// ServerID returns the static sid for a server name (case-insensitive), or 0
// when unknown.
func ServerID(server string) int {
	for _, s := range servers {
		if strings.EqualFold(s.Name, server) {
			return s.ID
		}
	}
	return 0
}

// Servers lists the known server names.
func Servers() []string {
	names := make([]string, len(servers))
	for i, s := range servers {
		names[i] = s.Name
	}
	return names
}

// ItemURL builds the item page address: base/item/{id}/{slug}, degrading to
// base/item/{id}/ when the name yields no slug, with ?sid={n} appended when
// the server name resolves via the static table. An empty server omits the
// query entirely (useful for opening the page in a browser).
func ItemURL(base string, itemID int, name, server string) string {
	base = strings.TrimRight(base, "/")

	var url string
	if slug := Slug(name); slug != "" {
		url = fmt.Sprintf("%s/item/%d/%s", base, itemID, slug)
	} else {
		url = fmt.Sprintf("%s/item/%d/", base, itemID)
	}

	if server != "" {
		if sid := ServerID(server); sid > 0 {
			url += fmt.Sprintf("?sid=%d", sid)
		}
	}
	return url
}

// Slug derives the URL path segment from an item name: lowercase, ASCII
// letters and digits only, runs of space/hyphen/underscore collapsed to a
// single hyphen, no leading or trailing hyphen. Idempotent on its own output.
func Slug(name string) string {
	var b strings.Builder
	lastDash := false

	for _, ch := range strings.ToLower(name) {
		switch {
		case (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9'):
			b.WriteRune(ch)
			lastDash = false
		case ch == ' ' || ch == '-' || ch == '_':
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
