// Package inventory loads the item manifest the frontend feeds to the sync
// engine. Decoding actual game inventory files is a separate concern; the
// manifest is the seam: one CSV row per item, "id,name[,category[,count]]".
package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mogtools/ahsync/internal/domain"
)

// LoadManifest reads an item manifest. Rows whose first column is not an
// integer are skipped, which also covers an optional header row. Blank lines
// and '#' comments are ignored.
func LoadManifest(path string) ([]*domain.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open item manifest: %w", err)
	}
	defer f.Close()

	items, err := ReadManifest(f)
	if err != nil {
		return nil, fmt.Errorf("read item manifest %s: %w", path, err)
	}
	return items, nil
}

// ReadManifest parses manifest rows from r.
func ReadManifest(r io.Reader) ([]*domain.Item, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	var items []*domain.Item
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue // header or malformed row
		}

		item := &domain.Item{
			ID:    id,
			Name:  strings.TrimSpace(record[1]),
			Count: 1,
		}
		if len(record) > 2 {
			item.Category = strings.TrimSpace(record[2])
		}
		if len(record) > 3 {
			if count, err := strconv.Atoi(strings.TrimSpace(record[3])); err == nil {
				item.Count = count
			}
		}
		items = append(items, item)
	}

	return items, nil
}
