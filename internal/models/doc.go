// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

/*
Package models defines data structures shared across the Roomies service.

Key Components:

  - Listing: a rentable room or whole property with structured attributes
  - Address: optional location of a listing, carrying the city name
  - Like: a user's expressed interest in a listing
  - APIResponse envelopes: the success/message/error JSON shapes returned
    by every HTTP endpoint

Listings are read-only reference data for the recommendation engine; likes are
written by the like/unlike endpoints and read back as a user's history.
*/
package models
