package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mogtools/ahsync/internal/domain"
)

func TestLastSaleFromElement(t *testing.T) {
	page := `<html><span id="sales-last" class="price">12,345</span></html>`
	assert.Equal(t, "12,345", LastSale(page, "Asura").Display())

	single := `<html><span id='sales-last'>9800</span></html>`
	assert.Equal(t, "9,800", LastSale(single, "Asura").Display())
}

func TestLastSaleZeroElementFallsToArray(t *testing.T) {
	// A zero in the sales-last element means the page carried no usable
	// value there; the embedded sales array is scanned instead.
	page := `<html><span id="sales-last">0</span>
<script>
Site.server = "Asura";
Site.sid = "28";
Item.sales = [
  {"price":500,"saleon":10,"seller_server":28,"buyer_server":3}
];
</script></html>`
	assert.Equal(t, "500", LastSale(page, "Asura").Display())
}

func TestLastSaleArrayPicksHighestSaleOn(t *testing.T) {
	page := `<script>
Site.server = "Asura";
Site.sid = "28";
Item.sales = [
  {"price":500,"saleon":10,"seller_server":28,"buyer_server":3},
  {"price":700,"saleon":20,"seller_server":3,"buyer_server":28}
];
</script>`
	assert.Equal(t, "700", LastSale(page, "Asura").Display())
}

func TestLastSaleArrayTieKeepsFirst(t *testing.T) {
	page := `<script>
Site.server = "Asura";
Site.sid = "28";
Item.sales = [
  {"price":500,"saleon":10,"seller_server":28,"buyer_server":3},
  {"price":700,"saleon":10,"seller_server":28,"buyer_server":3}
];
</script>`
	assert.Equal(t, "500", LastSale(page, "Asura").Display())
}

func TestLastSaleArraySkipsOtherServers(t *testing.T) {
	page := `<script>
Site.server = "Asura";
Site.sid = "28";
Item.sales = [
  {"price":500,"saleon":10,"seller_server":3,"buyer_server":4}
];
</script>`
	assert.Equal(t, domain.PriceUnavailable, LastSale(page, "Asura").Display())
}

func TestLastSaleArrayUnresolvedServerMatchesAny(t *testing.T) {
	// No Site.sid and no option list: server id resolves to 0, so every
	// sale is a candidate.
	page := `<script>
Item.sales = [
  {"price":300,"saleon":5,"seller_server":3,"buyer_server":4}
];
</script>`
	assert.Equal(t, "300", LastSale(page, "Asura").Display())
}

func TestLastSaleArrayNoSaleOnKeepsFirstMatch(t *testing.T) {
	page := `<script>
Site.server = "Asura";
Site.sid = "28";
Item.sales = [
  {"price":400,"seller_server":28,"buyer_server":3},
  {"price":900,"seller_server":28,"buyer_server":3}
];
</script>`
	assert.Equal(t, "400", LastSale(page, "Asura").Display())
}

func TestLastSaleNothingUsable(t *testing.T) {
	assert.False(t, LastSale("<html></html>", "Asura").Known())
	assert.False(t, LastSale("", "Asura").Known())
}
