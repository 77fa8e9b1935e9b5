package models

import "github.com/shopspring/decimal"

func init() {
	// фронтенд ждёт цены числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true
}

// LineTotal - стоимость позиции: цена за единицу * количество
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
