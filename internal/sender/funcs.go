package sender

import "github.com/shopspring/decimal"

var funcs = map[string]any{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}
