// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package recommend

import "fmt"

// Scorer combines content and collaborative signals into a single score.
// It is stateless apart from its configuration and vocabulary.
type Scorer struct {
	weights Weights
	cfg     ScoringConfig
	vocab   *Vocabulary
}

// NewScorer creates a scorer over vocab.
//
//nolint:gocritic // config structs passed by value for immutability
func NewScorer(weights Weights, cfg ScoringConfig, vocab *Vocabulary) *Scorer {
	return &Scorer{weights: weights, cfg: cfg, vocab: vocab}
}

// Collaborative is the per-user collaborative signal. It does not depend on
// the candidate, so it is computed once per request.
type Collaborative struct {
	Score        float64
	SimilarUsers int
	Reason       string
}

// Content returns the content score of candidate for a user with preferences
// pref, and one reason per dimension that earned a match bonus.
func (s *Scorer) Content(pref, candidate Vector) (float64, []string) {
	score := CosineSimilarity(pref, candidate) * s.cfg.ContentScale

	var reasons []string
	for i, v := range candidate {
		if i >= len(pref) {
			break
		}
		if v == 1 && pref[i] > s.cfg.MatchThreshold {
			score += s.cfg.MatchBonus
			reasons = append(reasons, "Matches your preference for "+s.vocab.Name(i))
		}
	}

	return score, reasons
}

// Collaborative averages the similarity of peers whose cosine similarity to
// pref exceeds the similarity threshold, scaled by the collaborative scale.
func (s *Scorer) Collaborative(pref Vector, peers []Vector) Collaborative {
	var sum float64
	similar := 0
	for _, peer := range peers {
		sim := CosineSimilarity(pref, peer)
		if sim > s.cfg.SimilarityThreshold {
			sum += sim
			similar++
		}
	}

	if similar == 0 {
		return Collaborative{}
	}

	return Collaborative{
		Score:        sum / float64(similar) * s.cfg.CollaborativeScale,
		SimilarUsers: similar,
		Reason:       similarUsersReason(similar),
	}
}

// Score blends the content score of candidate with the collaborative signal.
// The returned recommendation has no listing attached.
func (s *Scorer) Score(pref, candidate Vector, collab Collaborative) Recommendation {
	content, reasons := s.Content(pref, candidate)
	if collab.Reason != "" {
		reasons = append(reasons, collab.Reason)
	}
	if len(reasons) > s.cfg.MaxReasons {
		reasons = reasons[:s.cfg.MaxReasons]
	}
	if reasons == nil {
		reasons = []string{}
	}

	return Recommendation{
		Score:              s.weights.Content*content + s.weights.Collaborative*collab.Score,
		ContentScore:       content,
		CollaborativeScore: collab.Score,
		Reasons:            reasons,
	}
}

func similarUsersReason(n int) string {
	if n == 1 {
		return "1 user with similar taste"
	}
	return fmt.Sprintf("%d users with similar taste", n)
}
