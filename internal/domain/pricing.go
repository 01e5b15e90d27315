package domain

import (
	"errors"
	"math"
)

// ErrNegativeRate возвращается при отрицательной почасовой ставке
var ErrNegativeRate = errors.New("domain: price per hour must be non-negative")

const millisPerHour = 3_600_000

// ComputePrice derives the total price of an interval from the hourly rate.
// Fractional hours are allowed and the result keeps full float precision;
// rounding to currency precision happens only at persistence/serialization
// (see RoundPrice) so repeated reschedules do not compound rounding errors.
func ComputePrice(pricePerHour float64, period Interval) (float64, error) {
	if pricePerHour < 0 {
		return 0, ErrNegativeRate
	}
	if err := period.Validate(); err != nil {
		return 0, err
	}

	durationHours := float64(period.Duration().Milliseconds()) / millisPerHour
	return durationHours * pricePerHour, nil
}

// RoundPrice rounds a monetary value to 2 decimal places
func RoundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}
