package screening_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/screening"
)

func TestDecisionSummaryEmpty(t *testing.T) {
	t.Parallel()
	got := screening.DecisionSummary(domain.ClassificationResult{})
	assert.Equal(t, "No candidates analyzed. Please upload resumes.", got)
}

func TestDecisionSummaryStrong(t *testing.T) {
	t.Parallel()
	res := domain.ClassificationResult{
		Strong: []domain.Candidate{scored("alice.pdf", 90), scored("bob.txt", 80)},
		Weak:   []domain.Candidate{scored("carol.txt", 10)},
	}
	got := screening.DecisionSummary(res)
	assert.Contains(t, got, "Total candidates evaluated: 3.")
	assert.Contains(t, got, "Strong matches: 2")
	assert.Contains(t, got, "Borderline matches: 0")
	assert.Contains(t, got, "Weak matches: 1")
	assert.Contains(t, got, "Recommended next step: shortlist 2 strong candidates.")
	assert.Contains(t, got, "Top picks: alice.pdf, bob.txt")
}

func TestDecisionSummaryTopPicksCapped(t *testing.T) {
	t.Parallel()
	res := domain.ClassificationResult{
		Strong: []domain.Candidate{
			scored("a", 99), scored("b", 98), scored("c", 97), scored("d", 96),
		},
	}
	got := screening.DecisionSummary(res)
	assert.Contains(t, got, "Top picks: a, b, c")
	assert.NotContains(t, got, "Top picks: a, b, c, d")
}

func TestDecisionSummaryBorderlineOnly(t *testing.T) {
	t.Parallel()
	res := domain.ClassificationResult{Borderline: []domain.Candidate{scored("b", 60)}}
	got := screening.DecisionSummary(res)
	assert.Contains(t, got, "No strong matches - consider reviewing borderline candidates manually.")
}

func TestDecisionSummaryAllWeak(t *testing.T) {
	t.Parallel()
	res := domain.ClassificationResult{Weak: []domain.Candidate{scored("w", 5)}}
	got := screening.DecisionSummary(res)
	assert.Contains(t, got, "No suitable profiles. Suggest widening search or updating JD.")
}

func TestEmailDraftNoStrong(t *testing.T) {
	t.Parallel()
	got := screening.EmailDraft("Data Engineer", nil)
	assert.True(t, strings.HasPrefix(got, "Subject: Resume Screening Update"))
	assert.Contains(t, got, "no strong candidates matched")
	assert.True(t, strings.HasSuffix(got, "Regards,\nHR Screening Agent"))
}

func TestEmailDraftWithStrong(t *testing.T) {
	t.Parallel()
	c := scored("alice.pdf", 88.25)
	c.TotalExperience = f(5)
	c.Skills = []string{"python", "sql"}
	got := screening.EmailDraft("Data Engineer", []domain.Candidate{c})
	assert.Contains(t, got, "Subject: Shortlisted Candidates for Data Engineer")
	assert.Contains(t, got, "initial screening for the Data Engineer role")
	assert.Contains(t, got, "- alice.pdf | Score 88.2 | 5 yrs | Skills: python, sql")
	assert.True(t, strings.HasSuffix(got, "Regards,\nHR Screening Agent"))
}

func TestEmailDraftMissingExperience(t *testing.T) {
	t.Parallel()
	got := screening.EmailDraft("Role", []domain.Candidate{scored("bob.txt", 80)})
	assert.Contains(t, got, "| n/a yrs |")
}

func TestExplanation(t *testing.T) {
	t.Parallel()
	c := scored("alice.pdf", 77.5)
	c.Skills = []string{"python"}
	c.TotalExperience = f(4)
	got := screening.Explanation(c)
	assert.Contains(t, got, "alice.pdf has a score of 77.5")
	assert.Contains(t, got, "Key skills found: python.")
	assert.Contains(t, got, "Reported experience: 4 years.")

	bare := screening.Explanation(scored("bob.txt", 0))
	assert.NotContains(t, bare, "Key skills found")
	assert.NotContains(t, bare, "Reported experience")
}

func TestRoleTitle(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Senior Data Engineer", screening.RoleTitle("Senior Data Engineer\nWe are hiring..."))
	assert.Equal(t, "This Role", screening.RoleTitle(""))
	assert.Equal(t, "This Role", screening.RoleTitle(strings.Repeat("x", 120)+"\nrest"))
}

func TestInterviewQuestions(t *testing.T) {
	t.Parallel()
	got := screening.InterviewQuestions()
	assert.Equal(t, 3, strings.Count(got, "- "))
}
