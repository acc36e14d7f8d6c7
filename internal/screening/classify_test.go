package screening_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/screening"
)

func scored(name string, score float64) domain.Candidate {
	return domain.Candidate{FileName: name, FinalScore: score, Scored: true}
}

func TestClassify(t *testing.T) {
	t.Parallel()
	th := domain.Thresholds{Strong: 75, Borderline: 55}
	cands := []domain.Candidate{
		scored("a", 90),
		scored("b", 75), // boundary is inclusive
		scored("c", 74.9),
		scored("d", 55),
		scored("e", 54.9),
		scored("f", 0),
	}
	res := screening.Classify(cands, th)

	require.Equal(t, len(cands), res.Total())
	assert.Equal(t, []string{"a", "b"}, names(res.Strong))
	assert.Equal(t, []string{"c", "d"}, names(res.Borderline))
	assert.Equal(t, []string{"e", "f"}, names(res.Weak))
}

func TestClassifyUnscoredCountsAsZero(t *testing.T) {
	t.Parallel()
	// a candidate that never went through scoring lands in weak even when
	// its stale FinalScore field would qualify
	cands := []domain.Candidate{{FileName: "ghost", FinalScore: 99, Scored: false}}
	res := screening.Classify(cands, domain.Thresholds{Strong: 75, Borderline: 55})
	require.Len(t, res.Weak, 1)
	assert.Empty(t, res.Strong)
}

func TestClassifyEmpty(t *testing.T) {
	t.Parallel()
	res := screening.Classify(nil, domain.Thresholds{Strong: 75, Borderline: 55})
	assert.Zero(t, res.Total())
}

func names(cands []domain.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.FileName)
	}
	return out
}
