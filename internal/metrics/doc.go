// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides the Prometheus collectors exported on /metrics.

All collectors are registered with the default registry through promauto at
package init, so importing the package is enough to expose them.

# Available Metrics

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

Recommendations:
  - recommendations_total{result}
  - recommendation_duration_seconds

Artifacts:
  - artifact_fetches_total{scheme,result}
  - artifact_bytes_total{scheme}
  - catalog_load_duration_seconds
  - catalog_items

Posters:
  - poster_lookups_total{outcome}
  - poster_fetch_duration_seconds

Caches and circuit breakers:
  - cache_hits_total{cache_type}, cache_misses_total{cache_type}
  - cache_expired_evictions_total{cache_type}
  - circuit_breaker_state{name}, circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from,to}
*/
package metrics
