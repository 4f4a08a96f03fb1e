// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"strings"

	"confirmate.io/modelrater/sources"
)

// ComplianceThreshold is the minimum fuzzy-match similarity for a report's
// model slug to be attributed to the target model.
const ComplianceThreshold = 90.0

var (
	safetyTerms     = []string{"toxicity", "privacy", "bias", "injection", "deception"}
	opennessTerms   = []string{"over_refusal", "over-refusal", "over_blocking", "over-blocking"}
	regulatoryTerms = []string{"privacy", "governance", "audit", "risk"}
)

// ComplianceExtractor maps one ComplianceReport's flat numeric leaves to
// compliance_<key> metrics plus substring-heuristic aggregate means.
type ComplianceExtractor struct{}

// Extract emits one compliance_<key> metric per numeric leaf of report,
// plus compliance_overall_mean and, for each bucket with at least one
// matching key, compliance_safety_mean / compliance_openness_mean /
// compliance_regulatory_mean.
func (ComplianceExtractor) Extract(report sources.ComplianceReport) []Metric {
	var out []Metric
	var all, safety, openness, regulatory []float64

	for key, value := range report.Checks {
		out = append(out, Metric{Key: "compliance_" + key, Value: value, Unit: "score_0_1"})
		all = append(all, value)
		lower := strings.ToLower(key)
		if containsAny(lower, safetyTerms) {
			safety = append(safety, value)
		}
		if containsAny(lower, opennessTerms) {
			openness = append(openness, value)
		}
		if containsAny(lower, regulatoryTerms) {
			regulatory = append(regulatory, value)
		}
	}

	if m, ok := mean(all); ok {
		out = append(out, Metric{Key: "compliance_overall_mean", Value: m, Unit: "score_0_1"})
	}
	if m, ok := mean(safety); ok {
		out = append(out, Metric{Key: "compliance_safety_mean", Value: m, Unit: "score_0_1"})
	}
	if m, ok := mean(openness); ok {
		out = append(out, Metric{Key: "compliance_openness_mean", Value: m, Unit: "score_0_1"})
	}
	if m, ok := mean(regulatory); ok {
		out = append(out, Metric{Key: "compliance_regulatory_mean", Value: m, Unit: "score_0_1"})
	}
	return out
}

// SelectReportSlug picks the candidate report slug whose identifier best
// matches variants, returning it only if the similarity clears
// ComplianceThreshold — the model-identity gate the board's file tree needs
// before ComplianceBoard.LoadReport is called with it.
func SelectReportSlug(candidateSlugs []string, variants []string) (string, bool) {
	idx, ok := bestMatch(candidateSlugs, variants, func(s string) string { return s }, ComplianceThreshold)
	if !ok {
		return "", false
	}
	return candidateSlugs[idx], true
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
