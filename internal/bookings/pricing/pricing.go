package pricing

import (
	"math"
	"time"
)

// Nights counts started 24h periods between checkIn and checkOut, at least one.
func Nights(checkIn, checkOut time.Time) int {
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}

// Quote is the total price of a stay at pricePerNight.
func Quote(pricePerNight float64, checkIn, checkOut time.Time) float64 {
	return float64(Nights(checkIn, checkOut)) * pricePerNight
}
