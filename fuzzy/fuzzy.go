// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package fuzzy provides weighted string-similarity scoring and name-variant
// generation used to resolve model entities across registries.
package fuzzy

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

var providerPrefix = regexp.MustCompile(`^\s*[\w .-]+\s*:\s*`)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize strips a leading "provider:" prefix, lower-cases, collapses any
// run of non-alphanumeric characters to a single space, and trims. Applying
// Normalize twice yields the same result as applying it once.
func Normalize(name string) string {
	s := providerPrefix.ReplaceAllString(name, "")
	s = strings.ToLower(s)
	s = nonAlnumRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ratio returns a 0..100 Levenshtein-derived similarity ratio between a and b.
func ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 100
	}
	return (1 - float64(dist)/float64(maxLen)) * 100
}

// partialRatio finds the best-aligned substring window of the longer string
// against the shorter one and scores that window, the way RapidFuzz's
// partial_ratio complements its plain ratio for strings of different length
// (e.g. "gpt-4" inside "openai: gpt-4 turbo").
func partialRatio(a, b string) float64 {
	shorter, longer := a, b
	if len(a) > len(b) {
		shorter, longer = b, a
	}
	if len(shorter) == 0 {
		return ratio(a, b)
	}
	if len(longer) <= len(shorter) {
		return ratio(a, b)
	}

	best := 0.0
	window := len(shorter)
	for start := 0; start+window <= len(longer); start++ {
		r := ratio(shorter, longer[start:start+window])
		if r > best {
			best = r
		}
	}
	return best
}

// Similarity returns a WRatio-like blend of a plain ratio and a partial
// ratio, taking the better of the two — the same intent as RapidFuzz's
// WRatio, expressed over a plain Levenshtein ratio since that is the
// distance primitive available here.
func Similarity(a, b string) float64 {
	if a == b {
		return 100
	}
	best := ratio(a, b)
	if p := partialRatio(a, b); p > best {
		best = p
	}
	return best
}

// BestSimilarity takes the max of the raw-vs-raw and normalized-vs-normalized
// similarity, so that normalization is monotone-non-decreasing with respect
// to the similarity score.
func BestSimilarity(a, b string) float64 {
	best := Similarity(a, b)
	if n := Similarity(Normalize(a), Normalize(b)); n > best {
		best = n
	}
	return best
}

// Variants emits displayName, registryID and hfRepoID (when non-empty)
// together with their normalized forms and, for slash-bearing IDs, the
// post-slash suffix and its normalized form. Output preserves insertion
// order and is de-duplicated.
func Variants(displayName, registryID, hfRepoID string) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	addWithVariants := func(s string) {
		add(s)
		add(Normalize(s))
		if idx := strings.LastIndex(s, "/"); idx >= 0 && idx+1 < len(s) {
			suffix := s[idx+1:]
			add(suffix)
			add(Normalize(suffix))
		}
	}

	addWithVariants(displayName)
	addWithVariants(registryID)
	addWithVariants(hfRepoID)

	return out
}

// BestVariantSimilarity compares query against every entry of variants and
// returns the maximum BestSimilarity score.
func BestVariantSimilarity(query string, variants []string) float64 {
	best := 0.0
	for _, v := range variants {
		if s := BestSimilarity(query, v); s > best {
			best = s
		}
	}
	return best
}
