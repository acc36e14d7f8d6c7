package screening_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/screening"
)

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 1.0, screening.CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, screening.CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, screening.CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// zero-norm vectors must not fault
	assert.Zero(t, screening.CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
	assert.Zero(t, screening.CosineSimilarity(nil, []float32{1, 2}))
}

func TestSkillMatchScore(t *testing.T) {
	t.Parallel()
	// no requirements means no credit
	assert.Zero(t, screening.SkillMatchScore(nil, []string{"python"}))
	assert.Zero(t, screening.SkillMatchScore([]string{" ", ""}, []string{"python"}))

	assert.Equal(t, 1.0, screening.SkillMatchScore([]string{"Python"}, []string{"python"}))
	assert.Equal(t, 0.5, screening.SkillMatchScore([]string{"python", "go"}, []string{"python"}))
	assert.Zero(t, screening.SkillMatchScore([]string{"rust"}, []string{"python", "sql"}))
}

func TestExperienceScore(t *testing.T) {
	t.Parallel()
	// neutral when either side is absent or zero
	assert.Equal(t, 0.5, screening.ExperienceScore(0, f(4)))
	assert.Equal(t, 0.5, screening.ExperienceScore(3, nil))
	assert.Equal(t, 0.5, screening.ExperienceScore(3, f(0)))

	assert.Equal(t, 0.5, screening.ExperienceScore(4, f(2)))
	assert.Equal(t, 1.0, screening.ExperienceScore(2, f(2)))
	// capped, over-qualification earns no extra credit
	assert.Equal(t, 1.0, screening.ExperienceScore(2, f(10)))
}

func TestCombineScores(t *testing.T) {
	t.Parallel()
	w := domain.ScoreWeights{Semantic: 0.5, Skill: 0.35, Experience: 0.15}
	assert.InDelta(t, 1.0, screening.CombineScores(1, 1, 1, w), 1e-9)
	assert.InDelta(t, 0.5*0.8+0.35*0.5+0.15*1.0, screening.CombineScores(0.8, 0.5, 1.0, w), 1e-9)

	// weights are not normalized
	big := domain.ScoreWeights{Semantic: 2, Skill: 2, Experience: 2}
	assert.InDelta(t, 6.0, screening.CombineScores(1, 1, 1, big), 1e-9)
}

type vecEmbedder struct {
	vecs map[string][]float32
	err  error
}

func (e vecEmbedder) Embed(_ domain.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	if v, ok := e.vecs[text]; ok {
		return v, nil
	}
	return []float32{0, 0}, nil
}

func TestScorerScoreAll(t *testing.T) {
	t.Parallel()
	emb := vecEmbedder{vecs: map[string][]float32{
		"close": {1, 0},
		"far":   {0, 1},
	}}
	w := domain.ScoreWeights{Semantic: 0.5, Skill: 0.35, Experience: 0.15}
	s := screening.NewScorer(emb, w, 2)

	cands := []domain.Candidate{
		{FileName: "a.txt", Text: "close", Skills: []string{"python"}, TotalExperience: f(3)},
		{FileName: "b.txt", Text: "far"},
	}
	job := domain.JobRequirement{RequiredSkills: []string{"python"}, RequiredYears: 3}
	s.ScoreAll(context.Background(), cands, job, []float32{1, 0})

	require.True(t, cands[0].Scored)
	require.True(t, cands[1].Scored)
	assert.InDelta(t, 1.0, cands[0].Semantic, 1e-9)
	assert.Equal(t, 1.0, cands[0].SkillScore)
	assert.Equal(t, 1.0, cands[0].ExperienceScore)
	assert.InDelta(t, 1.0, cands[0].FinalScore, 1e-9)

	assert.InDelta(t, 0.0, cands[1].Semantic, 1e-9)
	assert.Zero(t, cands[1].SkillScore)
	assert.Equal(t, 0.5, cands[1].ExperienceScore)
}

func TestScorerEmbedFailureDegrades(t *testing.T) {
	t.Parallel()
	s := screening.NewScorer(vecEmbedder{err: errors.New("provider down")}, domain.ScoreWeights{Semantic: 1}, 1)
	cands := []domain.Candidate{{FileName: "a.txt", Text: "anything"}}
	s.ScoreAll(context.Background(), cands, domain.JobRequirement{}, []float32{1, 0})
	require.True(t, cands[0].Scored)
	assert.Zero(t, cands[0].Semantic)
}
