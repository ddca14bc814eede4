package entity

import (
	"bytes"
	"math"
	"slices"
)

// Packaging defaults applied when a product lacks an attribute, and the
// minimum values a carrier accepts.
const (
	DefaultLengthCm = 10.0
	DefaultWidthCm  = 10.0
	DefaultHeightCm = 10.0
	DefaultWeightKg = 0.5

	MinDimensionCm = 1.0
	MinWeightKg    = 0.1
)

// Parcel is the single package the carrier is asked to move.
type Parcel struct {
	LengthCm float64
	WidthCm  float64
	HeightCm float64
	WeightKg float64
}

// AggregateParcel stacks every unit of every item into one parcel: the
// footprint is the largest length and width, height and weight add up.
// The result does not depend on the order of items.
func AggregateParcel(items []LineItem) Parcel {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b LineItem) int {
		return bytes.Compare(a.ProductID[:], b.ProductID[:])
	})

	var parcel Parcel
	for _, item := range sorted {
		if item.Quantity <= 0 {
			continue
		}
		qty := float64(item.Quantity)

		parcel.LengthCm = math.Max(parcel.LengthCm, valueOr(item.Dimensions.LengthCm, DefaultLengthCm))
		parcel.WidthCm = math.Max(parcel.WidthCm, valueOr(item.Dimensions.WidthCm, DefaultWidthCm))
		parcel.HeightCm += valueOr(item.Dimensions.HeightCm, DefaultHeightCm) * qty
		parcel.WeightKg += valueOr(item.Dimensions.WeightKg, DefaultWeightKg) * qty
	}

	parcel.LengthCm = math.Max(parcel.LengthCm, MinDimensionCm)
	parcel.WidthCm = math.Max(parcel.WidthCm, MinDimensionCm)
	parcel.HeightCm = math.Max(parcel.HeightCm, MinDimensionCm)
	parcel.WeightKg = math.Max(parcel.WeightKg, MinWeightKg)

	return parcel
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil || *v <= 0 {
		return fallback
	}

	return *v
}
