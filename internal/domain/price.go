package domain

import "strconv"

// Price is either a known gil amount or unavailable. It replaces the legacy
// convention where 0 meant "no value found": the constructor folds the zero
// sentinel into the unavailable state so nothing downstream has to guess
// whether a zero is real.
type Price struct {
	amount uint64
	known  bool
}

// GilPrice returns a known price, or an unavailable one for amount 0 (the
// auction house never reports a genuine zero-gil sale; zero is its "no data"
// sentinel).
func GilPrice(amount uint64) Price {
	if amount == 0 {
		return Price{}
	}
	return Price{amount: amount, known: true}
}

// ParseGil normalizes a scraped numeric string: every non-digit character is
// dropped and the remaining digit run is parsed. No digits, or a run that
// overflows uint64, yields an unavailable price.
func ParseGil(raw string) Price {
	var digits []byte
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if len(digits) == 0 {
		return Price{}
	}
	amount, err := strconv.ParseUint(string(digits), 10, 64)
	if err != nil {
		return Price{}
	}
	return GilPrice(amount)
}

// Known reports whether the price carries a real amount.
func (p Price) Known() bool { return p.known }

// Amount returns the gil amount; 0 when unavailable.
func (p Price) Amount() uint64 { return p.amount }

// Display renders the price for the UI and the cache: thousands-separated
// digits for a known amount, the "N/A" marker otherwise.
func (p Price) Display() string {
	if !p.known {
		return PriceUnavailable
	}
	return FormatGil(p.amount)
}

// FormatGil formats an amount with comma thousands separators ("123,456").
func FormatGil(amount uint64) string {
	s := strconv.FormatUint(amount, 10)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
