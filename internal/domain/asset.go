package domain

// Asset identifies a currency or instrument, e.g. "USD" or "BTC".
// Assets are compared by value and never mutated.
type Asset string

func (a Asset) String() string { return string(a) }
