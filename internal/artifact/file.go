// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// FileSource reads artifacts from local disk.
type FileSource struct{}

// Fetch reads the file named by ref, with or without a file:// prefix.
func (FileSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, transient(ref, err)
	}

	path := strings.TrimPrefix(ref, "file://")
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(ref, err)
	}
	if err != nil {
		return nil, permanent(ref, err)
	}
	if info.IsDir() {
		return nil, permanent(ref, fmt.Errorf("%s is a directory", path))
	}
	if info.Size() > MaxArtifactBytes {
		return nil, permanent(ref, fmt.Errorf("artifact is %d bytes, limit is %d", info.Size(), MaxArtifactBytes))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, permanent(ref, err)
	}
	return data, nil
}
