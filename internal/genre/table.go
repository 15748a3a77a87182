// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package genre maps canonical genre labels to TMDB genre IDs and back.
//
// The table is fixed at package initialization and never mutated, so every
// function here is safe for concurrent use. Lookups by name are
// case-insensitive; unknown names and IDs are filtered out, never reported
// as errors.
package genre

import (
	"sort"
	"strings"
)

// Fallback is the label searched for when inference yields nothing usable.
const Fallback = "drama"

// TMDB movie genre IDs.
const (
	Action         = 28
	Adventure      = 12
	Animation      = 16
	Comedy         = 35
	Crime          = 80
	Documentary    = 99
	Drama          = 18
	Family         = 10751
	Fantasy        = 14
	History        = 36
	Horror         = 27
	Music          = 10402
	Mystery        = 9648
	Romance        = 10749
	ScienceFiction = 878
	TVMovie        = 10770
	Thriller       = 53
	War            = 10752
	Western        = 37
)

var (
	idToName = map[int]string{
		Action:         "action",
		Adventure:      "adventure",
		Animation:      "animation",
		Comedy:         "comedy",
		Crime:          "crime",
		Documentary:    "documentary",
		Drama:          "drama",
		Family:         "family",
		Fantasy:        "fantasy",
		History:        "history",
		Horror:         "horror",
		Music:          "music",
		Mystery:        "mystery",
		Romance:        "romance",
		ScienceFiction: "science fiction",
		TVMovie:        "tv movie",
		Thriller:       "thriller",
		War:            "war",
		Western:        "western",
	}

	// aliases resolve on name lookup only; IDsToNames always returns the
	// canonical label.
	aliases = map[string]int{
		"science_fiction": ScienceFiction,
		"sci-fi":          ScienceFiction,
		"scifi":           ScienceFiction,
		"tv_movie":        TVMovie,
	}

	nameToID = invert(idToName)
	labels   = sortedLabels(idToName)
)

func invert(m map[int]string) map[string]int {
	out := make(map[string]int, len(m))
	for id, name := range m {
		out[name] = id
	}
	return out
}

func sortedLabels(m map[int]string) []string {
	out := make([]string, 0, len(m))
	for _, name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the TMDB ID for a label, ignoring case and surrounding space.
func Lookup(label string) (int, bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	if id, ok := nameToID[key]; ok {
		return id, true
	}
	id, ok := aliases[key]
	return id, ok
}

// Name returns the canonical label for a TMDB ID.
func Name(id int) (string, bool) {
	name, ok := idToName[id]
	return name, ok
}

// Normalize returns the canonical spelling of a known label.
func Normalize(label string) (string, bool) {
	id, ok := Lookup(label)
	if !ok {
		return "", false
	}
	return idToName[id], true
}

// Labels returns the canonical vocabulary in alphabetical order.
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// NamesToIDs maps labels to TMDB IDs in first-seen order. Unknown labels are
// dropped and an ID is emitted at most once.
func NamesToIDs(names []string) []int {
	ids := make([]int, 0, len(names))
	seen := make(map[int]struct{}, len(names))
	for _, n := range names {
		id, ok := Lookup(n)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// IDsToNames maps TMDB IDs to canonical labels, preserving input order and
// dropping unknown IDs.
func IDsToNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := idToName[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
