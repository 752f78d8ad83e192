package scrape

import (
	"strconv"
	"strings"
)

// ServerID resolves the numeric id the page uses for server. The page's own
// Site.server/Site.sid assignment pair is authoritative when its name matches
// the target; otherwise the server <option> list is scanned for a
// case-insensitive name match. Returns 0 when neither resolves, which callers
// treat as "match any server".
func ServerID(payload, server string) int {
	if payload == "" || server == "" {
		return 0
	}

	if sid := siteSid(payload, server); sid > 0 {
		return sid
	}

	const optionMarker = "<option value='"
	pos := 0
	for {
		idx := indexFold(payload[pos:], optionMarker)
		if idx < 0 {
			return 0
		}
		valueStart := pos + idx + len(optionMarker)
		valueEnd := strings.IndexByte(payload[valueStart:], '\'')
		if valueEnd < 0 {
			return 0
		}
		valueEnd += valueStart

		nameStart := strings.IndexByte(payload[valueEnd:], '>')
		if nameStart < 0 {
			return 0
		}
		nameStart += valueEnd + 1
		nameEnd := strings.IndexByte(payload[nameStart:], '<')
		if nameEnd < 0 {
			return 0
		}
		nameEnd += nameStart

		name := strings.TrimSpace(payload[nameStart:nameEnd])
		if strings.EqualFold(name, server) {
			if id, err := strconv.Atoi(payload[valueStart:valueEnd]); err == nil {
				return id
			}
		}

		pos = nameEnd + 1
	}
}

// siteSid reads the page's embedded Site.server / Site.sid assignments. The
// sid only applies when the page's current server is the one we are asking
// about.
func siteSid(payload, server string) int {
	const serverMarker = "Site.server = \""
	if idx := indexFold(payload, serverMarker); idx >= 0 {
		start := idx + len(serverMarker)
		end := strings.IndexByte(payload[start:], '"')
		if end > 0 {
			current := payload[start : start+end]
			if !strings.EqualFold(current, server) {
				return 0
			}
		}
	}

	const sidMarker = "Site.sid = \""
	idx := indexFold(payload, sidMarker)
	if idx < 0 {
		return 0
	}
	start := idx + len(sidMarker)
	end := strings.IndexByte(payload[start:], '"')
	if end <= 0 {
		return 0
	}

	sid, err := strconv.Atoi(payload[start : start+end])
	if err != nil {
		return 0
	}
	return sid
}
