package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-screener/internal/config"
	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/screening"
	"github.com/fairyhunter13/resume-screener/internal/usecase"
)

type stubEmbedder struct {
	vecs map[string][]float32
}

func (e stubEmbedder) Embed(_ domain.Context, text string) ([]float32, error) {
	if v, ok := e.vecs[text]; ok {
		return v, nil
	}
	return []float32{0, 0}, nil
}

// stubExtractor decodes bytes as text; names ending in .bad substitute a
// placeholder like a failed binary extraction would.
type stubExtractor struct{}

func (stubExtractor) ExtractText(_ domain.Context, fileName string, data []byte) (string, bool) {
	if strings.HasSuffix(fileName, ".bad") {
		return "Could not extract text from " + fileName + ". The file may be corrupt or unreadable.", true
	}
	return string(data), false
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func newService(t *testing.T, vecs map[string][]float32) *usecase.ScreenService {
	t.Helper()
	return usecase.NewScreenService(testConfig(t), stubEmbedder{vecs: vecs}, stubExtractor{}, screening.DefaultVocabulary())
}

func TestScreenValidation(t *testing.T) {
	t.Parallel()
	svc := newService(t, nil)

	_, err := svc.Screen(context.Background(), usecase.ScreenRequest{
		Files: []usecase.UploadFile{{Name: "a.txt", Data: []byte("x")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Screen(context.Background(), usecase.ScreenRequest{JobDescription: "hiring"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestScreenRankingAndOutcome(t *testing.T) {
	t.Parallel()
	jd := "Data Engineer\nWe need 3 years of Python and SQL experience building pipelines."
	vecs := map[string][]float32{
		jd: {1, 0},
		"Python and SQL expert with 4 years of experience. alice@example.com": {1, 0},
		"Gardener, 10 years pruning roses.":                                   {0, 1},
	}
	svc := newService(t, vecs)

	req := usecase.ScreenRequest{
		JobDescription: jd,
		RequiredSkills: []string{"python", "sql"},
		RequiredYears:  3,
		Thresholds:     &domain.Thresholds{Strong: 0.9, Borderline: 0.4},
		Files: []usecase.UploadFile{
			{Name: "gardener.txt", Data: []byte("Gardener, 10 years pruning roses.")},
			{Name: "alice.txt", Data: []byte("Python and SQL expert with 4 years of experience. alice@example.com")},
		},
	}
	out, err := svc.Screen(context.Background(), req)
	require.NoError(t, err)

	// ranked descending regardless of upload order
	require.Len(t, out.Candidates, 2)
	assert.Equal(t, "alice.txt", out.Candidates[0].FileName)
	assert.Equal(t, "gardener.txt", out.Candidates[1].FileName)
	assert.GreaterOrEqual(t, out.Candidates[0].FinalScore, out.Candidates[1].FinalScore)

	top := out.Candidates[0]
	assert.Equal(t, "alice@example.com", top.Email)
	assert.Equal(t, []string{"python", "sql"}, top.Skills)
	require.NotNil(t, top.TotalExperience)
	assert.Equal(t, 4.0, *top.TotalExperience)
	assert.InDelta(t, 1.0, top.FinalScore, 1e-9)
	assert.NotEmpty(t, top.Explanation)
	assert.NotEmpty(t, top.ID)

	assert.Equal(t, "Data Engineer", out.RoleTitle)
	require.Len(t, out.Classification.Strong, 1)
	assert.Contains(t, out.Decision, "Strong matches: 1")
	assert.Contains(t, out.EmailDraft, "Shortlisted Candidates for Data Engineer")
	assert.NotEmpty(t, out.InterviewQuestions)
	assert.Empty(t, out.JDAnalysis.Issues)
}

func TestScreenPlaceholderIsolation(t *testing.T) {
	t.Parallel()
	jd := "A role description long enough to pass the quality checks easily."
	svc := newService(t, map[string][]float32{jd: {1, 0}})

	out, err := svc.Screen(context.Background(), usecase.ScreenRequest{
		JobDescription: jd,
		RequiredSkills: []string{"python"},
		RequiredYears:  2,
		Files: []usecase.UploadFile{
			{Name: "broken.bad", Data: []byte("ignored")},
			{Name: "ok.txt", Data: []byte("python developer, 2 years")},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Candidates, 2)

	var broken, ok domain.Candidate
	for _, c := range out.Candidates {
		if c.FileName == "broken.bad" {
			broken = c
		} else {
			ok = c
		}
	}
	// the bad file is flagged but still scored; the good file is unaffected
	assert.True(t, broken.ExtractionFailed)
	assert.True(t, broken.Scored)
	assert.False(t, ok.ExtractionFailed)
	assert.Equal(t, 1.0, ok.SkillScore)
}

func TestScreenRoleTitleOverride(t *testing.T) {
	t.Parallel()
	jd := "Something long enough to be a valid description of the position."
	svc := newService(t, nil)
	out, err := svc.Screen(context.Background(), usecase.ScreenRequest{
		JobDescription: jd,
		RoleTitle:      "Staff Engineer",
		Files:          []usecase.UploadFile{{Name: "a.txt", Data: []byte("text")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", out.RoleTitle)
}

func TestExportCSV(t *testing.T) {
	t.Parallel()
	jd := "Python role with enough words to count as a reasonable description."
	vecs := map[string][]float32{
		jd: {1, 0},
		"python, 3 years, strong@example.com": {1, 0},
	}
	svc := newService(t, vecs)
	out, err := svc.Screen(context.Background(), usecase.ScreenRequest{
		JobDescription: jd,
		RequiredSkills: []string{"python"},
		RequiredYears:  3,
		Thresholds:     &domain.Thresholds{Strong: 0.9, Borderline: 0.4},
		Files: []usecase.UploadFile{
			{Name: "strong.txt", Data: []byte("python, 3 years, strong@example.com")},
			{Name: "weak.txt", Data: []byte("unrelated resume")},
		},
	})
	require.NoError(t, err)

	all, err := svc.ExportCSV(out, usecase.ExportAll)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(all)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "file_name,email,final_score,semantic_score,skill_score,experience_score,skills,experience_years,explanation", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "strong.txt,strong@example.com,"))

	strong, err := svc.ExportCSV(out, usecase.ExportStrong)
	require.NoError(t, err)
	strongLines := strings.Split(strings.TrimSpace(string(strong)), "\n")
	require.Len(t, strongLines, 2)
	assert.Contains(t, strongLines[1], "strong.txt")

	_, err = svc.ExportCSV(out, usecase.ExportTier("nope"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
