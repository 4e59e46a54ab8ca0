// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad is matched by every failure to build the store from artifacts.
	ErrLoad = errors.New("catalog load failed")

	// ErrNotFound is returned when no catalog item has the requested title.
	ErrNotFound = errors.New("title not found in catalog")
)

// Load stages reported in LoadError.Stage.
const (
	StageFetch    = "fetch"
	StageDecode   = "decode"
	StageValidate = "validate"
)

// LoadError describes why the catalog or similarity matrix could not be loaded.
// It is fatal for the process: no recommendation can be served without a store.
type LoadError struct {
	Stage string // fetch, decode or validate
	Ref   string // artifact reference, empty for cross-artifact checks
	Err   error
}

func (e *LoadError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("catalog load: %s %s: %v", e.Stage, e.Ref, e.Err)
	}
	return fmt.Sprintf("catalog load: %s: %v", e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is makes every LoadError match ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// NewLoadError wraps err as a LoadError. An err that already is a LoadError is returned as is.
func NewLoadError(stage, ref string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Stage: stage, Ref: ref, Err: err}
}
