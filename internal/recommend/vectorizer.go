// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package recommend

import "github.com/tomtom215/roomies/internal/models"

// Normalization ceilings. A raw value at or above its ceiling encodes as 1.
const (
	CeilingSizeM2          = 200.0
	CeilingRent            = 2000.0
	CeilingBedroomsSingle  = 5.0
	CeilingBedroomsDouble  = 5.0
	CeilingFlatmatesFemale = 10.0
	CeilingFlatmatesMale   = 10.0
	CeilingRoomSizeM2      = 50.0
)

// Vectorize encodes a listing over vocab.
//
// Categorical fields are one-hot, numeric fields are divided by their ceiling
// and clamped to [0, 1], booleans are 0 or 1, and amenities, house rules and
// the address city set sparse 1s. Missing relations leave their dimensions at
// 0. Names the vocabulary does not contain are skipped and returned as
// unknown; they never write to another dimension.
func Vectorize(vocab *Vocabulary, listing *models.Listing) (Vector, []string) {
	vec := make(Vector, vocab.Len())
	if listing == nil {
		return vec, nil
	}

	var unknown []string
	set := func(name string, value float64) {
		if value == 0 {
			return
		}
		idx, ok := vocab.Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			return
		}
		vec[idx] = value
	}

	if listing.ListingType != "" {
		set(PrefixListingType+string(listing.ListingType), 1)
	}
	if listing.PropertyType != "" {
		set(PrefixPropertyType+string(listing.PropertyType), 1)
	}

	set(DimSizeM2, normalize(listing.SizeM2, CeilingSizeM2))
	set(DimRent, normalize(listing.Rent, CeilingRent))
	set(DimBedroomsSingle, normalize(float64(listing.BedroomsSingle), CeilingBedroomsSingle))
	set(DimBedroomsDouble, normalize(float64(listing.BedroomsDouble), CeilingBedroomsDouble))
	set(DimFlatmatesFemale, normalize(float64(listing.FlatmatesFemale), CeilingFlatmatesFemale))
	set(DimFlatmatesMale, normalize(float64(listing.FlatmatesMale), CeilingFlatmatesMale))
	set(DimRoomSizeM2, normalize(listing.RoomSizeM2, CeilingRoomSizeM2))

	set(DimHasBed, boolValue(listing.HasBed))
	set(DimNoDeposit, boolValue(listing.NoDeposit))
	set(DimOpenEnded, boolValue(listing.OpenEnded))

	if listing.BedType != "" {
		set(PrefixBedType+string(listing.BedType), 1)
	}

	for _, name := range listing.RoomAmenities {
		set(PrefixRoomAmenity+name, 1)
	}
	for _, name := range listing.PropertyAmenities {
		set(PrefixPropertyAmenity+name, 1)
	}
	for _, name := range listing.HouseRules {
		set(PrefixHouseRule+name, 1)
	}

	if city := listing.City(); city != "" {
		set(PrefixCity+city, 1)
	}

	vocab.recordMisses(len(unknown))
	return vec, unknown
}

// normalize divides raw by ceiling and clamps the result to [0, 1].
func normalize(raw, ceiling float64) float64 {
	if raw <= 0 || ceiling <= 0 {
		return 0
	}
	v := raw / ceiling
	if v > 1 {
		return 1
	}
	return v
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
