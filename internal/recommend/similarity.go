// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package recommend

import "math"

// CosineSimilarity returns dot(a, b) / (|a| * |b|).
// It returns 0 for mismatched lengths, empty vectors, or a zero norm.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// addInto adds src to dst element-wise. dst must be at least as long as src.
func addInto(dst, src Vector) {
	for i, v := range src {
		dst[i] += v
	}
}

// divideInto divides every element of v by n.
func divideInto(v Vector, n int) {
	d := float64(n)
	for i := range v {
		v[i] /= d
	}
}
