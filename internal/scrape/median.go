package scrape

import (
	"strconv"
	"strings"

	"github.com/mogtools/ahsync/internal/domain"
)

const (
	medianListMarker = "Item.server_medians"
	serverNameKey    = "\"server_name\":\""
	medianKey        = "\"median\":"
)

// Median extracts the median sale price for server from an item page. The
// page embeds a per-server median array; the first block whose server_name
// matches (case-insensitively) and yields digits after the median key wins.
// No marker, no matching block, or no digits resolves to an unavailable
// price.
func Median(payload, server string) domain.Price {
	list, ok := arraySpan(payload, medianListMarker)
	if !ok {
		return domain.Price{}
	}

	for _, obj := range objects(list) {
		name, ok := stringField(obj, serverNameKey)
		if !ok || !strings.EqualFold(name, server) {
			continue
		}

		pos := strings.Index(obj, medianKey)
		if pos < 0 {
			continue
		}
		digits := digitRun(obj, pos+len(medianKey))
		if digits == "" {
			continue
		}
		amount, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			continue
		}
		return domain.GilPrice(amount)
	}

	return domain.Price{}
}
