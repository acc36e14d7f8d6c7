package screening

import (
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// neutralExperienceScore is returned when either side of the experience
// requirement is absent or zero, so neither unset requirements nor silent
// resumes get the full penalty.
const neutralExperienceScore = 0.5

// CosineSimilarity returns dot(a,b)/(|a|*|b|) in float64 arithmetic. A
// zero-norm vector on either side yields 0 rather than a division fault;
// empty-text candidates embed to all zeros under the provider contract.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// SkillMatchScore returns the fraction of required skills present in the
// candidate's skill set. Required entries are trimmed and lower-cased with
// blanks dropped; candidate skills are lower-cased. An empty requirement
// list scores 0: no requirements means no credit, not full credit.
func SkillMatchScore(required, candidate []string) float64 {
	req := make([]string, 0, len(required))
	for _, s := range required {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			req = append(req, s)
		}
	}
	if len(req) == 0 {
		return 0
	}
	have := make(map[string]struct{}, len(candidate))
	for _, s := range candidate {
		have[strings.ToLower(s)] = struct{}{}
	}
	matched := 0
	for _, s := range req {
		if _, ok := have[s]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(req))
}

// ExperienceScore scales candidate years against required years, capped at
// 1.0 so over-qualification earns no extra credit. Either side absent or
// zero yields the neutral 0.5.
func ExperienceScore(requiredYears float64, candidateYears *float64) float64 {
	if requiredYears <= 0 || candidateYears == nil || *candidateYears == 0 {
		return neutralExperienceScore
	}
	return math.Min(*candidateYears/requiredYears, 1.0)
}

// CombineScores applies the weight triple. Weights are used as given; no
// normalization is performed.
func CombineScores(semantic, skill, experience float64, w domain.ScoreWeights) float64 {
	return semantic*w.Semantic + skill*w.Skill + experience*w.Experience
}

// Scorer computes component and final scores for candidates against a job.
// Each candidate reads the shared job context and writes only itself, so
// scoring fans out across a bounded worker pool; results land in input
// order because workers address candidates by index.
type Scorer struct {
	Embedder    domain.Embedder
	Weights     domain.ScoreWeights
	Concurrency int
}

// NewScorer constructs a Scorer. Concurrency below 1 is treated as 1.
func NewScorer(e domain.Embedder, w domain.ScoreWeights, concurrency int) Scorer {
	if concurrency < 1 {
		concurrency = 1
	}
	return Scorer{Embedder: e, Weights: w, Concurrency: concurrency}
}

// ScoreAll scores every candidate in place. An embedding failure for a
// candidate degrades that candidate's semantic component to 0 with a warn
// log; it never aborts the run.
func (s Scorer) ScoreAll(ctx domain.Context, cands []domain.Candidate, job domain.JobRequirement, jobVec []float32) {
	if len(cands) == 0 {
		return
	}
	workers := s.Concurrency
	if workers > len(cands) {
		workers = len(cands)
	}
	idx := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				s.scoreOne(ctx, &cands[i], job, jobVec)
			}
		}()
	}
	for i := range cands {
		idx <- i
	}
	close(idx)
	wg.Wait()
}

func (s Scorer) scoreOne(ctx domain.Context, c *domain.Candidate, job domain.JobRequirement, jobVec []float32) {
	vec, err := s.Embedder.Embed(ctx, c.Text)
	if err != nil {
		slog.Warn("candidate embedding failed; semantic score degraded to 0",
			slog.String("file_name", c.FileName), slog.Any("error", err))
		vec = nil
	}
	c.Semantic = CosineSimilarity(vec, jobVec)
	c.SkillScore = SkillMatchScore(job.RequiredSkills, c.Skills)
	c.ExperienceScore = ExperienceScore(job.RequiredYears, c.TotalExperience)
	c.FinalScore = CombineScores(c.Semantic, c.SkillScore, c.ExperienceScore, s.Weights)
	c.Scored = true
}
