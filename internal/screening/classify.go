package screening

import "github.com/fairyhunter13/resume-screener/internal/domain"

// Classify partitions candidates into strong, borderline and weak tiers by
// final score. A candidate that was never scored counts as 0. The partition
// is total and disjoint, and each tier keeps the input order; no re-sorting
// happens here.
func Classify(cands []domain.Candidate, th domain.Thresholds) domain.ClassificationResult {
	var res domain.ClassificationResult
	for _, c := range cands {
		score := 0.0
		if c.Scored {
			score = c.FinalScore
		}
		switch {
		case score >= th.Strong:
			res.Strong = append(res.Strong, c)
		case score >= th.Borderline:
			res.Borderline = append(res.Borderline, c)
		default:
			res.Weak = append(res.Weak, c)
		}
	}
	return res
}
