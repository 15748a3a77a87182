// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package inference

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

// arrayPattern matches the first [...] span, including an empty one.
var arrayPattern = regexp.MustCompile(`\[[^\]]*\]`)

// extractGenres pulls the first bracketed JSON array of strings out of
// free-form model text. Labels are trimmed and lower-cased; blanks are
// dropped. Unknown labels are kept for the mapping table to discard.
func extractGenres(text string) ([]string, error) {
	raw := arrayPattern.FindString(text)
	if raw == "" {
		return nil, ErrNoArray
	}

	var labels []string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" {
			out = append(out, l)
		}
	}
	return out, nil
}
