package models

import "github.com/shopspring/decimal"

func init() {
	// Currency values travel as JSON numbers, the same shape the shop front-end sends.
	decimal.MarshalJSONWithoutQuotes = true
}

// Record is implemented by every entity persisted in a collection.
type Record interface {
	RecordID() string
}
