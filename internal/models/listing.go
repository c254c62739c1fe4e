// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package models

import "time"

// ListingType distinguishes a single room from a whole property.
type ListingType string

const (
	ListingTypeRoom           ListingType = "room"
	ListingTypeEntireProperty ListingType = "entire_property"
)

// PropertyType is the kind of building a listing is in.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
)

// BedType describes the bed provided with a room.
type BedType string

const (
	BedTypeSingle  BedType = "single"
	BedTypeDouble  BedType = "double"
	BedTypeSofaBed BedType = "sofa_bed"
)

// Address is the location of a listing. City is empty when unknown.
type Address struct {
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
}

// Listing is a catalog item: a room or an entire property offered for rent.
//
// Numeric attributes that were never filled in are zero. Relation fields
// (amenities, rules) hold reference-table names, not ids.
type Listing struct {
	ID                string       `json:"id"`
	OwnerID           string       `json:"ownerId"`
	Title             string       `json:"title"`
	ListingType       ListingType  `json:"listingType"`
	PropertyType      PropertyType `json:"propertyType"`
	SizeM2            float64      `json:"sizeM2"`
	Rent              float64      `json:"rent"`
	BedroomsSingle    int          `json:"bedroomsSingle"`
	BedroomsDouble    int          `json:"bedroomsDouble"`
	FlatmatesFemale   int          `json:"flatmatesFemale"`
	FlatmatesMale     int          `json:"flatmatesMale"`
	RoomSizeM2        float64      `json:"roomSizeM2"`
	HasBed            bool         `json:"hasBed"`
	NoDeposit         bool         `json:"noDeposit"`
	OpenEnded         bool         `json:"openEnded"`
	BedType           BedType      `json:"bedType,omitempty"`
	RoomAmenities     []string     `json:"roomAmenities"`
	PropertyAmenities []string     `json:"propertyAmenities"`
	HouseRules        []string     `json:"houseRules"`
	Address           *Address     `json:"address,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// City returns the listing's city name, or "" when the address or city is missing.
func (l *Listing) City() string {
	if l == nil || l.Address == nil {
		return ""
	}
	return l.Address.City
}

// Like records that a user is interested in a listing.
type Like struct {
	UserID    string    `json:"userId"`
	ListingID string    `json:"listingId"`
	CreatedAt time.Time `json:"createdAt"`
}
