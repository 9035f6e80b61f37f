package user

import (
	"errors"
	"fmt"
	"strings"
)

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

// Currency only tags amounts for display. Amounts are never converted.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyNGN Currency = "NGN"
)

const DefaultCurrency = CurrencyUSD

var ErrUnknownCurrency = errors.New("unknown currency")

type Settings struct {
	Currency Currency
}

func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case CurrencyUSD:
		return CurrencyUSD, nil
	case CurrencyNGN:
		return CurrencyNGN, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
}
