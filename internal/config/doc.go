// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config loads Reelmatch configuration with Koanf.

Sources are layered, later ones winning:

 1. Struct defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, else the first of DefaultConfigPaths that exists
 3. A .env file (DOTENV_PATH or ./.env), loaded into the environment without
    overriding variables that are already set
 4. Environment variables listed in envMappings; others are ignored

Commonly used variables:

	CATALOG_REF       catalog artifact reference (default data/movies.json)
	SIMILARITY_REF    similarity matrix reference (default data/similarity.simm)
	HF_TOKEN          bearer token for hf:// references
	TMDB_API_KEY      TMDB v3 API key; posters fall back to placeholders without it
	STORAGE_PATH      BadgerDB directory for the artifact and poster caches
	HTTP_PORT         listen port (default 8501)
	LOG_LEVEL         trace, debug, info, warn, error

The original model files are published on the Hugging Face Hub; a converted
copy can be referenced directly:

	CATALOG_REF=hf://N4F1U/Movie_Recommender_tmdb/movies.json.zst
	SIMILARITY_REF=hf://N4F1U/Movie_Recommender_tmdb/similarity.simm.zst
*/
package config
