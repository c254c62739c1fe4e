// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Fixed dimension names. Their order is part of the vector layout.
const (
	DimListingTypeRoom           = "listingType_room"
	DimListingTypeEntireProperty = "listingType_entire_property"
	DimPropertyTypeApartment     = "propertyType_apartment"
	DimPropertyTypeHouse         = "propertyType_house"
	DimSizeM2                    = "sizeM2"
	DimRent                      = "rent"
	DimBedroomsSingle            = "bedroomsSingle"
	DimBedroomsDouble            = "bedroomsDouble"
	DimFlatmatesFemale           = "flatmatesFemale"
	DimFlatmatesMale             = "flatmatesMale"
	DimRoomSizeM2                = "roomSizeM2"
	DimHasBed                    = "hasBed"
	DimNoDeposit                 = "noDeposit"
	DimOpenEnded                 = "openEnded"
	DimBedTypeSingle             = "bedType_single"
	DimBedTypeDouble             = "bedType_double"
	DimBedTypeSofaBed            = "bedType_sofa_bed"
)

// Prefixes of categorical and dynamic dimensions.
const (
	PrefixListingType     = "listingType_"
	PrefixPropertyType    = "propertyType_"
	PrefixBedType         = "bedType_"
	PrefixRoomAmenity     = "roomAmenity_"
	PrefixPropertyAmenity = "propertyAmenity_"
	PrefixHouseRule       = "houseRule_"
	PrefixCity            = "city_"
)

var fixedDimensions = []string{
	DimListingTypeRoom,
	DimListingTypeEntireProperty,
	DimPropertyTypeApartment,
	DimPropertyTypeHouse,
	DimSizeM2,
	DimRent,
	DimBedroomsSingle,
	DimBedroomsDouble,
	DimFlatmatesFemale,
	DimFlatmatesMale,
	DimRoomSizeM2,
	DimHasBed,
	DimNoDeposit,
	DimOpenEnded,
	DimBedTypeSingle,
	DimBedTypeDouble,
	DimBedTypeSofaBed,
}

// FixedDimensions returns the fixed dimensions in vector order.
func FixedDimensions() []string {
	out := make([]string, len(fixedDimensions))
	copy(out, fixedDimensions)
	return out
}

// Vocabulary is an immutable, ordered mapping from dimension name to vector index.
type Vocabulary struct {
	names       []string
	index       map[string]int
	fingerprint string

	// misses counts Index and Vectorize lookups of absent names.
	misses atomic.Int64
}

// NewVocabulary builds a vocabulary from names in order. Repeated names keep
// their first position.
func NewVocabulary(names []string) *Vocabulary {
	v := &Vocabulary{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
	}
	for _, name := range names {
		if _, exists := v.index[name]; exists {
			continue
		}
		v.index[name] = len(v.names)
		v.names = append(v.names, name)
	}

	h := sha256.New()
	for _, name := range v.names {
		h.Write([]byte(name))
		h.Write([]byte{0})
	}
	v.fingerprint = hex.EncodeToString(h.Sum(nil))[:16]

	return v
}

// BuildVocabulary loads the reference tables concurrently and returns the
// fixed dimensions followed by room amenities, property amenities, house
// rules and cities, each prefixed with its kind.
func BuildVocabulary(ctx context.Context, src ReferenceSource) (*Vocabulary, error) {
	var roomAmenities, propertyAmenities, houseRules, cities []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roomAmenities, err = src.RoomAmenityNames(gctx)
		if err != nil {
			return fmt.Errorf("room amenities: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		propertyAmenities, err = src.PropertyAmenityNames(gctx)
		if err != nil {
			return fmt.Errorf("property amenities: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		houseRules, err = src.HouseRuleNames(gctx)
		if err != nil {
			return fmt.Errorf("house rules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cities, err = src.CityNames(gctx)
		if err != nil {
			return fmt.Errorf("cities: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	size := len(fixedDimensions) + len(roomAmenities) + len(propertyAmenities) + len(houseRules) + len(cities)
	names := make([]string, 0, size)
	names = append(names, fixedDimensions...)
	names = appendPrefixed(names, PrefixRoomAmenity, roomAmenities)
	names = appendPrefixed(names, PrefixPropertyAmenity, propertyAmenities)
	names = appendPrefixed(names, PrefixHouseRule, houseRules)
	names = appendPrefixed(names, PrefixCity, cities)

	return NewVocabulary(names), nil
}

func appendPrefixed(dst []string, prefix string, names []string) []string {
	for _, name := range names {
		dst = append(dst, prefix+name)
	}
	return dst
}

// Len returns the number of dimensions.
func (v *Vocabulary) Len() int {
	return len(v.names)
}

// Names returns a copy of the dimension names in vector order.
func (v *Vocabulary) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Name returns the name of dimension i, or "" when i is out of range.
func (v *Vocabulary) Name(i int) string {
	if i < 0 || i >= len(v.names) {
		return ""
	}
	return v.names[i]
}

// Fingerprint identifies the ordered set of names. Two vocabularies with the
// same fingerprint produce comparable vectors.
func (v *Vocabulary) Fingerprint() string {
	return v.fingerprint
}

// Lookup returns the index of name and whether it is present.
func (v *Vocabulary) Lookup(name string) (int, bool) {
	idx, ok := v.index[name]
	return idx, ok
}

// Index returns the index of name, or 0 when it is absent. Misses are counted
// and visible through Misses.
func (v *Vocabulary) Index(name string) int {
	if idx, ok := v.index[name]; ok {
		return idx
	}
	v.misses.Add(1)
	return 0
}

// Misses returns how many lookups of absent names this vocabulary has seen.
func (v *Vocabulary) Misses() int64 {
	return v.misses.Load()
}

func (v *Vocabulary) recordMisses(n int) {
	if n > 0 {
		v.misses.Add(int64(n))
	}
}

// FeatureKind classifies a dimension name by its prefix: "listingType",
// "propertyType", "bedType", "roomAmenity", "propertyAmenity", "houseRule",
// "city", or "attribute" for the numeric and boolean dimensions.
func FeatureKind(name string) string {
	for _, prefix := range []string{
		PrefixListingType, PrefixPropertyType, PrefixBedType,
		PrefixRoomAmenity, PrefixPropertyAmenity, PrefixHouseRule, PrefixCity,
	} {
		if strings.HasPrefix(name, prefix) {
			return strings.TrimSuffix(prefix, "_")
		}
	}
	return "attribute"
}
