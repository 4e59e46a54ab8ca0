// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package logging provides centralized zerolog-based structured logging.
//
// JSON output is the default; console output is meant for development.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("title", title).Int("k", k).Msg("Recommendations served")
//	logging.Error().Err(err).Msg("Catalog load failed")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
//
// # Configuration
//
// Environment variables (through internal/config):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Component Loggers
//
//	logger := logging.WithComponent("poster")
//	logger.Warn().Err(err).Msg("poster store write failed")
//
// # Context-Aware Logging
//
// The request ID middleware stores request and correlation IDs in the
// request context; Ctx returns a logger carrying both:
//
//	logging.Ctx(ctx).Debug().Msg("unknown title")
//
// # slog Adapter
//
// suture's sutureslog event hook needs a *slog.Logger:
//
//	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), cfg)
//
// # Redaction
//
// Outbound HTTP errors embed the request URL, which for TMDB includes the
// api_key. Log them through SanitizeError, and mask configured secrets with
// SanitizeToken:
//
//	logger.Debug().Str("error", logging.SanitizeError(err)).Msg("poster lookup failed")
//
// # Testing
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
package logging
