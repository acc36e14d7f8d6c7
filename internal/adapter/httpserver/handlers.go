package httpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/resume-screener/internal/config"
	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Screener   *usecase.ScreenService
	EmbedCheck func(ctx context.Context) error
	TikaCheck  func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
// Nil checks are skipped by ReadyzHandler.
func NewServer(cfg config.Config, screener *usecase.ScreenService, embedCheck, tikaCheck, redisCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Screener: screener, EmbedCheck: embedCheck, TikaCheck: tikaCheck, RedisCheck: redisCheck}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// screenForm mirrors the multipart fields of POST /v1/screen.
type screenForm struct {
	JobDescription string  `validate:"required"`
	RequiredYears  float64 `validate:"gte=0"`
}

type jdAnalysisDTO struct {
	Issues    []string `json:"issues"`
	Questions []string `json:"questions"`
}

type candidateDTO struct {
	ID               string   `json:"id"`
	FileName         string   `json:"file_name"`
	Email            string   `json:"email,omitempty"`
	ExtractionFailed bool     `json:"extraction_failed,omitempty"`
	Skills           []string `json:"skills"`
	ExperienceYears  *float64 `json:"experience_years"`
	SemanticScore    float64  `json:"semantic_score"`
	SkillScore       float64  `json:"skill_score"`
	ExperienceScore  float64  `json:"experience_score"`
	FinalScore       float64  `json:"final_score"`
	Explanation      string   `json:"explanation"`
}

type classificationDTO struct {
	Strong     []string `json:"strong"`
	Borderline []string `json:"borderline"`
	Weak       []string `json:"weak"`
}

type screenResponse struct {
	RoleTitle          string            `json:"role_title"`
	JDAnalysis         jdAnalysisDTO     `json:"jd_analysis"`
	Candidates         []candidateDTO    `json:"candidates"`
	Classification     classificationDTO `json:"classification"`
	Decision           string            `json:"decision"`
	EmailDraft         string            `json:"email_draft"`
	InterviewQuestions string            `json:"interview_questions"`
}

// parseScreenRequest reads the multipart form shared by the screen and
// export endpoints into a usecase request.
func (s *Server) parseScreenRequest(w http.ResponseWriter, r *http.Request) (usecase.ScreenRequest, error) {
	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		return usecase.ScreenRequest{}, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument)
	}
	maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "too large") {
			return usecase.ScreenRequest{}, fmt.Errorf("%w: payload exceeds %d MB", domain.ErrInvalidArgument, s.Cfg.MaxUploadMB)
		}
		return usecase.ScreenRequest{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	form := screenForm{JobDescription: r.FormValue("job_description")}

	var req usecase.ScreenRequest
	req.JobDescription = form.JobDescription
	req.RoleTitle = r.FormValue("role_title")

	if raw := strings.TrimSpace(r.FormValue("required_skills")); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.RequiredSkills = append(req.RequiredSkills, s)
			}
		}
	}
	if raw := strings.TrimSpace(r.FormValue("required_years")); raw != "" {
		years, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return usecase.ScreenRequest{}, fmt.Errorf("%w: required_years must be a number", domain.ErrInvalidArgument)
		}
		form.RequiredYears = years
		req.RequiredYears = years
	}

	if err := getValidator().Struct(form); err != nil {
		return usecase.ScreenRequest{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	th, err := parseThresholdOverride(r)
	if err != nil {
		return usecase.ScreenRequest{}, err
	}
	req.Thresholds = th
	wt, err := parseWeightOverride(r)
	if err != nil {
		return usecase.ScreenRequest{}, err
	}
	req.Weights = wt

	if r.MultipartForm == nil || len(r.MultipartForm.File["resumes"]) == 0 {
		return usecase.ScreenRequest{}, fmt.Errorf("%w: at least one resumes file part is required", domain.ErrInvalidArgument)
	}
	for _, fh := range r.MultipartForm.File["resumes"] {
		f, err := fh.Open()
		if err != nil {
			return usecase.ScreenRequest{}, fmt.Errorf("%w: open %s: %v", domain.ErrInvalidArgument, fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return usecase.ScreenRequest{}, fmt.Errorf("%w: read %s: %v", domain.ErrInvalidArgument, fh.Filename, err)
		}
		req.Files = append(req.Files, usecase.UploadFile{Name: fh.Filename, Data: data})
	}
	return req, nil
}

// parseThresholdOverride reads the optional threshold pair. Both must be
// given together; the pair replaces the configured defaults wholesale.
func parseThresholdOverride(r *http.Request) (*domain.Thresholds, error) {
	strongRaw := strings.TrimSpace(r.FormValue("strong_threshold"))
	borderRaw := strings.TrimSpace(r.FormValue("borderline_threshold"))
	if strongRaw == "" && borderRaw == "" {
		return nil, nil
	}
	if strongRaw == "" || borderRaw == "" {
		return nil, fmt.Errorf("%w: strong_threshold and borderline_threshold must be set together", domain.ErrInvalidArgument)
	}
	strong, err := strconv.ParseFloat(strongRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: strong_threshold must be a number", domain.ErrInvalidArgument)
	}
	border, err := strconv.ParseFloat(borderRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: borderline_threshold must be a number", domain.ErrInvalidArgument)
	}
	return &domain.Thresholds{Strong: strong, Borderline: border}, nil
}

// parseWeightOverride reads the optional weight triple. All three must be
// given together. No sum validation: weights are used as given.
func parseWeightOverride(r *http.Request) (*domain.ScoreWeights, error) {
	raws := [3]string{
		strings.TrimSpace(r.FormValue("w_semantic")),
		strings.TrimSpace(r.FormValue("w_skill")),
		strings.TrimSpace(r.FormValue("w_experience")),
	}
	if raws[0] == "" && raws[1] == "" && raws[2] == "" {
		return nil, nil
	}
	var vals [3]float64
	for i, raw := range raws {
		if raw == "" {
			return nil, fmt.Errorf("%w: w_semantic, w_skill and w_experience must be set together", domain.ErrInvalidArgument)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: weight overrides must be numbers", domain.ErrInvalidArgument)
		}
		vals[i] = v
	}
	return &domain.ScoreWeights{Semantic: vals[0], Skill: vals[1], Experience: vals[2]}, nil
}

// ScreenHandler handles POST /v1/screen.
func (s *Server) ScreenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := s.parseScreenRequest(w, r)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		out, err := s.Screener.Screen(r.Context(), req)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toScreenResponse(out))
	}
}

// ExportHandler handles POST /v1/screen/export. The tier query parameter
// selects the full ranked table (all, the default) or the strong tier only.
func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := s.parseScreenRequest(w, r)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		out, err := s.Screener.Screen(r.Context(), req)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		tier := usecase.ExportTier(strings.ToLower(r.URL.Query().Get("tier")))
		data, err := s.Screener.ExportCSV(out, tier)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		name := "candidates.csv"
		if tier == usecase.ExportStrong {
			name = "strong_candidates.csv"
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func toScreenResponse(out usecase.ScreenOutcome) screenResponse {
	resp := screenResponse{
		RoleTitle: out.RoleTitle,
		JDAnalysis: jdAnalysisDTO{
			Issues:    out.JDAnalysis.Issues,
			Questions: out.JDAnalysis.Questions,
		},
		Candidates: make([]candidateDTO, 0, len(out.Candidates)),
		Classification: classificationDTO{
			Strong:     candidateIDs(out.Classification.Strong),
			Borderline: candidateIDs(out.Classification.Borderline),
			Weak:       candidateIDs(out.Classification.Weak),
		},
		Decision:           out.Decision,
		EmailDraft:         out.EmailDraft,
		InterviewQuestions: out.InterviewQuestions,
	}
	for _, c := range out.Candidates {
		resp.Candidates = append(resp.Candidates, candidateDTO{
			ID:               c.ID,
			FileName:         c.FileName,
			Email:            c.Email,
			ExtractionFailed: c.ExtractionFailed,
			Skills:           c.Skills,
			ExperienceYears:  c.TotalExperience,
			SemanticScore:    c.Semantic,
			SkillScore:       c.SkillScore,
			ExperienceScore:  c.ExperienceScore,
			FinalScore:       c.FinalScore,
			Explanation:      c.Explanation,
		})
	}
	return resp
}

func candidateIDs(cands []domain.Candidate) []string {
	ids := make([]string, 0, len(cands))
	for _, c := range cands {
		ids = append(ids, c.ID)
	}
	return ids
}

// HealthzHandler responds 200 when the process is alive.
func HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler probes the wired collaborators; nil checks are skipped.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type probe struct {
		name  string
		check func(context.Context) error
	}
	return func(w http.ResponseWriter, r *http.Request) {
		probes := []probe{
			{"embedder", s.EmbedCheck},
			{"tika", s.TikaCheck},
			{"redis", s.RedisCheck},
		}
		failures := map[string]string{}
		for _, p := range probes {
			if p.check == nil {
				continue
			}
			if err := p.check(r.Context()); err != nil {
				failures[p.name] = err.Error()
			}
		}
		if len(failures) > 0 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "unavailable", "failures": failures})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
