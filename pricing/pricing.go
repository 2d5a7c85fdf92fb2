// Package pricing holds the storefront's pure price arithmetic: flat-rate
// shipping with a free-shipping threshold. No I/O, no state.
package pricing

const (
	// FreeShippingThreshold is inclusive: a subtotal of exactly this amount
	// ships free.
	FreeShippingThreshold = 10000.0
	FlatShippingFee       = 100.0
)

// ShippingFee returns the fee for a given items subtotal.
func ShippingFee(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// Total combines an items subtotal with its shipping fee.
func Total(subtotal, shippingFee float64) float64 {
	return subtotal + shippingFee
}
