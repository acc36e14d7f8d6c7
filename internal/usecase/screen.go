// Package usecase orchestrates the screening pipeline over the domain ports.
package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/fairyhunter13/resume-screener/internal/adapter/observability"
	"github.com/fairyhunter13/resume-screener/internal/config"
	"github.com/fairyhunter13/resume-screener/internal/domain"
	obs "github.com/fairyhunter13/resume-screener/internal/observability"
	"github.com/fairyhunter13/resume-screener/internal/screening"
)

// UploadFile is one uploaded resume document.
type UploadFile struct {
	Name string
	Data []byte
}

// ScreenRequest carries everything for one screening run. Weights and
// Thresholds are optional overrides; nil means the configured defaults.
type ScreenRequest struct {
	JobDescription string
	RequiredSkills []string
	RequiredYears  float64
	RoleTitle      string
	Weights        *domain.ScoreWeights
	Thresholds     *domain.Thresholds
	Files          []UploadFile
}

// ScreenOutcome is the full result of one run. Candidates are ranked by
// final score descending; the classification tiers preserve that order.
type ScreenOutcome struct {
	RoleTitle          string
	JDAnalysis         screening.JDAnalysis
	Candidates         []domain.Candidate
	Classification     domain.ClassificationResult
	Decision           string
	EmailDraft         string
	InterviewQuestions string
}

// ScreenService runs the screening pipeline. Construct with NewScreenService.
type ScreenService struct {
	cfg       config.Config
	embedder  domain.Embedder
	extractor domain.ResumeExtractor
	vocab     screening.Vocabulary
}

// NewScreenService wires the pipeline dependencies.
func NewScreenService(cfg config.Config, e domain.Embedder, x domain.ResumeExtractor, v screening.Vocabulary) *ScreenService {
	return &ScreenService{cfg: cfg, embedder: e, extractor: x, vocab: v}
}

// Screen runs the whole pipeline: JD analysis, per-file extraction, scoring,
// ranking, classification and recommendation composition. A bad file never
// aborts the batch; only an empty job description or an empty file list is
// rejected.
func (s *ScreenService) Screen(ctx domain.Context, req ScreenRequest) (ScreenOutcome, error) {
	lg := obs.LoggerFromContext(ctx)

	jdText := strings.TrimSpace(req.JobDescription)
	if jdText == "" {
		return ScreenOutcome{}, fmt.Errorf("%w: job_description is required", domain.ErrInvalidArgument)
	}
	if len(req.Files) == 0 {
		return ScreenOutcome{}, fmt.Errorf("%w: at least one resume file is required", domain.ErrInvalidArgument)
	}

	weights := s.cfg.Weights()
	if req.Weights != nil {
		weights = *req.Weights
	}
	thresholds := s.cfg.Thresholds()
	if req.Thresholds != nil {
		thresholds = *req.Thresholds
	}

	job := domain.JobRequirement{
		Text:           req.JobDescription,
		RequiredSkills: req.RequiredSkills,
		RequiredYears:  req.RequiredYears,
	}

	analysis := screening.AnalyzeJD(job.Text, job.RequiredSkills, job.RequiredYears)

	cands := make([]domain.Candidate, 0, len(req.Files))
	extractionFailures := 0
	for _, f := range req.Files {
		text, failed := s.extractor.ExtractText(ctx, f.Name, f.Data)
		if failed {
			extractionFailures++
		}
		c := domain.Candidate{
			ID:               uuid.NewString(),
			FileName:         f.Name,
			Text:             text,
			ExtractionFailed: failed,
			Email:            screening.ExtractEmail(text),
			Skills:           s.vocab.Match(text),
			TotalExperience:  screening.ExtractExperience(text),
		}
		cands = append(cands, c)
	}

	// The job embedding is computed once and shared by every worker. A
	// provider failure degrades every semantic component to 0 instead of
	// failing the run.
	jobVec, err := s.embedder.Embed(ctx, job.Text)
	if err != nil {
		lg.Warn("job description embedding failed; semantic scores degraded to 0",
			"error", err)
		jobVec = nil
	}

	scorer := screening.NewScorer(s.embedder, weights, s.cfg.ScoreConcurrency)
	scorer.ScoreAll(ctx, cands, job, jobVec)

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].FinalScore > cands[j].FinalScore
	})

	for i := range cands {
		cands[i].Explanation = screening.Explanation(cands[i])
		observability.ObserveFinalScore(cands[i].FinalScore)
	}

	result := screening.Classify(cands, thresholds)
	observability.ObserveScreening(len(result.Strong), len(result.Borderline), len(result.Weak), extractionFailures)

	roleTitle := strings.TrimSpace(req.RoleTitle)
	if roleTitle == "" {
		roleTitle = screening.RoleTitle(job.Text)
	}

	lg.Info("screening completed",
		"candidates", len(cands),
		"strong", len(result.Strong),
		"borderline", len(result.Borderline),
		"weak", len(result.Weak),
		"extraction_failures", extractionFailures)

	return ScreenOutcome{
		RoleTitle:          roleTitle,
		JDAnalysis:         analysis,
		Candidates:         cands,
		Classification:     result,
		Decision:           screening.DecisionSummary(result),
		EmailDraft:         screening.EmailDraft(roleTitle, result.Strong),
		InterviewQuestions: screening.InterviewQuestions(),
	}, nil
}

// ExportTier selects which candidates an export includes.
type ExportTier string

const (
	ExportAll    ExportTier = "all"
	ExportStrong ExportTier = "strong"
)

var csvHeader = []string{
	"file_name", "email", "final_score", "semantic_score", "skill_score",
	"experience_score", "skills", "experience_years", "explanation",
}

// ExportCSV renders the ranked candidate list as CSV. ExportStrong keeps
// only the strong tier; order follows the ranked outcome in both cases.
func (s *ScreenService) ExportCSV(out ScreenOutcome, tier ExportTier) ([]byte, error) {
	var cands []domain.Candidate
	switch tier {
	case ExportStrong:
		cands = out.Classification.Strong
	case ExportAll, "":
		cands = out.Candidates
	default:
		return nil, fmt.Errorf("%w: unknown export tier %q", domain.ErrInvalidArgument, tier)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("op=usecase.ExportCSV: %w", err)
	}
	for _, c := range cands {
		years := ""
		if c.TotalExperience != nil {
			years = strconv.FormatFloat(*c.TotalExperience, 'f', -1, 64)
		}
		rec := []string{
			c.FileName,
			c.Email,
			strconv.FormatFloat(c.FinalScore, 'f', 4, 64),
			strconv.FormatFloat(c.Semantic, 'f', 4, 64),
			strconv.FormatFloat(c.SkillScore, 'f', 4, 64),
			strconv.FormatFloat(c.ExperienceScore, 'f', 4, 64),
			strings.Join(c.Skills, "; "),
			years,
			c.Explanation,
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("op=usecase.ExportCSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("op=usecase.ExportCSV: %w", err)
	}
	return buf.Bytes(), nil
}
