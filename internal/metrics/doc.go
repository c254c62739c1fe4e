// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

/*
Package metrics provides Prometheus metrics for Roomies.

All collectors are registered on the default registry through promauto and
exposed at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

API:
  - roomies_api_requests_total{method,endpoint,status}
  - roomies_api_request_duration_seconds{method,endpoint}
  - roomies_api_active_requests
  - roomies_api_rate_limit_hits_total{endpoint}

Recommendations:
  - roomies_recommendation_duration_seconds{outcome}
  - roomies_recommendations_returned
  - roomies_preference_updates_total{trigger,result}
  - roomies_likes_total{action,result}
  - roomies_recommend_vocabulary_generation, roomies_recommend_vocabulary_size
  - roomies_recommend_cache_entries{cache}, roomies_recommend_cache_hit_rate{cache}
  - roomies_recommend_unknown_features{kind}
  - roomies_recommend_cache_purged_total
  - roomies_peer_index_entries

Storage:
  - roomies_db_query_duration_seconds{operation}
  - roomies_db_query_errors_total{operation,error_type}
  - roomies_circuit_breaker_state{name}
  - roomies_circuit_breaker_requests_total{name,result}
  - roomies_circuit_breaker_consecutive_failures{name}
  - roomies_circuit_breaker_state_transitions_total{name,from,to}

Engine gauges are refreshed by the cache maintenance service rather than on
every request.
*/
package metrics
