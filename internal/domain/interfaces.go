package domain

import (
	"context"
	"time"
)

// PriceStore persists per-server price caches. All operations are whole-map:
// a batch loads the maps for its server up front and saves them back once at
// the batch boundary. Missing state is not an error; loads return empty maps.
type PriceStore interface {
	LoadMedians(server string) (map[int]string, error)
	LoadLastSales(server string) (map[int]string, error)
	LoadFetchTimes(server string) (map[int]time.Time, error)

	SaveMedians(server string, entries map[int]string) error
	SaveLastSales(server string, entries map[int]string) error
	SaveFetchTimes(server string, entries map[int]time.Time) error
}

// PageFetcher retrieves the raw auction house page for one item. A non-success
// HTTP status is an error.
type PageFetcher interface {
	ItemPage(ctx context.Context, itemID int, name, server string) (string, error)
}
