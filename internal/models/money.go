package models

import "github.com/shopspring/decimal"

// Amounts go over the wire as JSON numbers (1000.5, not "1000.5"). Decoding
// still accepts either form.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
