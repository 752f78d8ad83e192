package domain

import "strings"

// PriceUnavailable is the display marker for a price the auction house could
// not provide. Callers only ever see this marker or a formatted amount; the
// legacy "0" sentinel never leaves the engine.
const PriceUnavailable = "N/A"

// KeyItemCategory marks items with no market presence. They are skipped when
// building a fetch batch.
const KeyItemCategory = "Key Items"

// Item is one row of the live inventory the frontend displays. Median and
// LastSale hold display strings ("123,456" or "N/A"), filled in by the sync
// engine.
type Item struct {
	ID       int
	Name     string
	Category string
	Count    int
	Median   string
	LastSale string
}

// Marketable reports whether the item can appear on the auction house.
// Non-positive ids and key items have no market presence.
func (i *Item) Marketable() bool {
	return i.ID > 0 && !strings.EqualFold(i.Category, KeyItemCategory)
}

// FetchTarget is a deduplicated (id, name) pair queued for a price lookup.
// The name is only used to build the request URL.
type FetchTarget struct {
	ID   int
	Name string
}
