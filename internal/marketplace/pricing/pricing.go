// Package pricing implements the linear bonding curve that prices credits.
package pricing

import "math/bits"

// Curve is the deterministic price oracle: unit price rises with cumulative
// minted supply, so every unit minted raises the floor for the next buyer.
// Values are micro-units.
type Curve struct {
	Base  uint64
	Slope uint64
}

// UnitPrice returns the price of one credit at the given supply. The supply
// argument is the value before the mint being priced is applied. Saturates
// at the maximum uint64 rather than wrapping.
func (c Curve) UnitPrice(supply uint64) uint64 {
	price, ok := c.unitPrice(supply)
	if !ok {
		return ^uint64(0)
	}
	return price
}

func (c Curve) unitPrice(supply uint64) (uint64, bool) {
	hi, scaled := bits.Mul64(supply, c.Slope)
	if hi != 0 {
		return 0, false
	}
	price, carry := bits.Add64(c.Base, scaled, 0)
	return price, carry == 0
}

// TotalCost prices an entire mint at the pre-mint supply. The whole batch
// clears at the same unit price; the curve steps after the mint commits.
// All arithmetic is checked: ok is false when the cost does not fit in a
// uint64, and callers must reject the mint rather than use a wrapped value.
func (c Curve) TotalCost(supply, amount uint64) (cost uint64, ok bool) {
	unit, ok := c.unitPrice(supply)
	if !ok {
		return 0, false
	}
	hi, cost := bits.Mul64(unit, amount)
	return cost, hi == 0
}
