// Package domain holds the screening entities and the ports that adapters
// implement. It stays free of adapter dependencies.
package domain

import (
	"context"
	"errors"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrInternal        = errors.New("internal error")
)

// Candidate is one parsed resume. It is created per uploaded document,
// enriched in place (extraction, scoring, explanation) and discarded at the
// end of the screening run. Nothing is persisted across runs.
type Candidate struct {
	ID       string
	FileName string

	// Email is the first email-like substring found in the text, empty
	// when none was found.
	Email string

	// Text is the full extracted plain text. When extraction fails this
	// holds a human-readable placeholder and ExtractionFailed is set; the
	// placeholder still flows through skill and embedding extraction.
	Text             string
	ExtractionFailed bool

	// Skills is the subset of the vocabulary matched in Text, in
	// vocabulary order.
	Skills []string

	// TotalExperience is the first "<N>(+) years" figure in the text, nil
	// when no pattern matched.
	TotalExperience *float64

	// Populated by the scorer. Scored distinguishes a genuine zero score
	// from a candidate that never went through scoring.
	Semantic        float64
	SkillScore      float64
	ExperienceScore float64
	FinalScore      float64
	Scored          bool

	// Populated by the recommendation composer.
	Explanation string
}

// JobRequirement is the transient job context for one screening run.
// RequiredYears of zero means the requirement is unspecified.
type JobRequirement struct {
	Text           string
	RequiredSkills []string
	RequiredYears  float64
}

// ScoreWeights is the caller-supplied weight triple. It is deliberately not
// validated to sum to 1; the final score scale is the caller's business.
type ScoreWeights struct {
	Semantic   float64
	Skill      float64
	Experience float64
}

// Thresholds are the two tier cutoffs, on the same scale as the final
// score. Strong >= Borderline is assumed, not enforced.
type Thresholds struct {
	Strong     float64
	Borderline float64
}

// ClassificationResult partitions scored candidates into three disjoint
// tiers whose union is exactly the input list. Order within each tier
// follows input order.
type ClassificationResult struct {
	Strong     []Candidate
	Borderline []Candidate
	Weak       []Candidate
}

// Total returns the number of candidates across all tiers.
func (r ClassificationResult) Total() int {
	return len(r.Strong) + len(r.Borderline) + len(r.Weak)
}

// Embedder (port). Maps text to a fixed-dimension vector. Empty text yields
// an all-zero vector of the model dimensionality; identical input yields an
// identical vector.
type Embedder interface {
	Embed(ctx Context, text string) ([]float32, error)
}

// ResumeExtractor (port). Turns an uploaded document into plain text. It
// never fails: unsupported formats, unavailable backends and corrupt files
// all yield a descriptive placeholder with failed=true so that one bad file
// cannot abort a batch.
type ResumeExtractor interface {
	ExtractText(ctx Context, fileName string, data []byte) (text string, failed bool)
}

// Context aliases context.Context so usecases and the domain share one
// signature shape without importing adapters.
type Context = context.Context
