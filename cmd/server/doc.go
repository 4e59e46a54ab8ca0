// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the entry point for the Reelmatch server.

Reelmatch answers "which movies are most like this one?" from a precomputed
movie-by-movie similarity matrix, and optionally decorates each answer with a
TMDB poster URL.

# Startup

 1. Configuration: defaults, config.yaml, .env and environment (Koanf v2)
 2. Logging: zerolog, level and format from config
 3. Storage: badger for the artifact download cache and poster cache
 4. Artifacts: the catalog and similarity matrix are fetched, decoded and
    validated once; any failure is fatal
 5. Engine and poster resolver
 6. Supervisor tree with the HTTP server and the maintenance service

The supervisor tree:

	RootSupervisor ("reelmatch")
	├── DataSupervisor ("data-layer")
	│   └── MaintenanceService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Configuration

Common environment variables:
  - CATALOG_REF, SIMILARITY_REF: artifact references (path, https://, hf://, s3://, minio://)
  - HTTP_PORT: listen port (default 8501)
  - TMDB_API_KEY: enables poster lookups
  - STORAGE_PATH: badger directory, empty for in-memory
  - LOG_LEVEL, LOG_FORMAT

# Example Usage

	export CATALOG_REF=hf://N4F1U/Movie_Recommender_tmdb/movies.json.zst
	export SIMILARITY_REF=hf://N4F1U/Movie_Recommender_tmdb/similarity.simm.zst
	export TMDB_API_KEY=your-api-key
	./reelmatch

	curl 'http://localhost:8501/api/v1/recommendations?title=Avatar&posters=true'

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests, then badger is closed.
*/
package main
