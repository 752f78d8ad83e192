package scrape

import (
	"strings"

	"github.com/mogtools/ahsync/internal/domain"
)

const salesListMarker = "Item.sales"

// LastSale extracts the most recent sale price for server from an item page.
//
// Tier 1 reads the element marked id="sales-last" (either quote style) and
// normalizes the text between the enclosing > and <. A result of zero means
// the page carried no usable value there, so tier 2 scans the embedded sales
// array instead: among blocks matching the resolved server id, the one with
// the highest saleon ordinal wins (first seen on a tie), falling back to the
// first matching block when no block carries a usable saleon.
func LastSale(payload, server string) domain.Price {
	idx := indexFold(payload, "id=\"sales-last\"")
	if idx < 0 {
		idx = indexFold(payload, "id='sales-last'")
	}
	if idx < 0 {
		return lastSaleFromArray(payload, server)
	}

	start := strings.IndexByte(payload[idx:], '>')
	if start < 0 {
		return lastSaleFromArray(payload, server)
	}
	start += idx + 1
	end := strings.IndexByte(payload[start:], '<')
	if end <= 0 {
		return lastSaleFromArray(payload, server)
	}

	if price := domain.ParseGil(payload[start : start+end]); price.Known() {
		return price
	}
	return lastSaleFromArray(payload, server)
}

func lastSaleFromArray(payload, server string) domain.Price {
	list, ok := arraySpan(payload, salesListMarker)
	if !ok {
		return domain.Price{}
	}

	serverID := ServerID(payload, server)
	bestSaleOn := int64(-1)
	bestPrice := int64(-1)

	for _, obj := range objects(list) {
		price := intField(obj, "\"price\":")
		saleOn := intField(obj, "\"saleon\":")
		seller := intField(obj, "\"seller_server\":")
		buyer := intField(obj, "\"buyer_server\":")

		// Unresolved server id (0) matches every sale.
		matches := serverID <= 0 || seller == int64(serverID) || buyer == int64(serverID)
		if !matches || price < 0 {
			continue
		}

		if saleOn >= 0 && saleOn > bestSaleOn {
			bestSaleOn = saleOn
			bestPrice = price
		} else if bestPrice < 0 {
			bestPrice = price
		}
	}

	if bestPrice < 0 {
		return domain.Price{}
	}
	return domain.GilPrice(uint64(bestPrice))
}
