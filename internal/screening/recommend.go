package screening

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

const (
	// maxTopPicks caps how many strong candidates the decision summary
	// names explicitly.
	maxTopPicks = 3
	// maxListedSkills caps how many skills appear per candidate in email
	// drafts and explanations.
	maxListedSkills = 8
	// maxRoleTitleLength bounds how long a JD first line may be to serve
	// as the role title.
	maxRoleTitleLength = 80

	defaultRoleTitle = "This Role"
)

// DecisionSummary turns a classification into a human-readable decision.
// The four follow-up messages are mutually exclusive: empty input, no
// strong but some borderline, at least one strong, and nothing suitable.
// Tier buckets retain the upstream (score-descending) order, so the top
// picks are simply the first strong entries.
func DecisionSummary(res domain.ClassificationResult) string {
	total := res.Total()
	if total == 0 {
		return "No candidates analyzed. Please upload resumes."
	}

	msg := []string{
		fmt.Sprintf("Total candidates evaluated: %d.", total),
		fmt.Sprintf("Strong matches: %d", len(res.Strong)),
		fmt.Sprintf("Borderline matches: %d", len(res.Borderline)),
		fmt.Sprintf("Weak matches: %d", len(res.Weak)),
	}

	switch {
	case len(res.Strong) == 0 && len(res.Borderline) > 0:
		msg = append(msg, "No strong matches - consider reviewing borderline candidates manually.")
	case len(res.Strong) > 0:
		names := make([]string, 0, maxTopPicks)
		for _, c := range res.Strong {
			if len(names) == maxTopPicks {
				break
			}
			names = append(names, candidateName(c))
		}
		msg = append(msg, fmt.Sprintf("Recommended next step: shortlist %d strong candidates.", len(res.Strong)))
		msg = append(msg, fmt.Sprintf("Top picks: %s", strings.Join(names, ", ")))
	default:
		msg = append(msg, "No suitable profiles. Suggest widening search or updating JD.")
	}

	return strings.Join(msg, " ")
}

// EmailDraft composes an HR email for the strong tier. With no strong
// candidates it returns a fixed "no strong candidates" template; otherwise
// one line per candidate with name, score to one decimal, experience years
// and the first skills.
func EmailDraft(roleTitle string, strong []domain.Candidate) string {
	if len(strong) == 0 {
		return "Subject: Resume Screening Update\n\n" +
			"Hi,\n\n" +
			"Screening completed but no strong candidates matched.\n" +
			"Recommend expanding the search pool or adjusting requirements.\n\n" +
			"Regards,\nHR Screening Agent"
	}

	lines := []string{
		fmt.Sprintf("Subject: Shortlisted Candidates for %s\n", roleTitle),
		"Hello,\n",
		fmt.Sprintf("I have completed initial screening for the %s role.\n", roleTitle),
		"Recommended candidates for interview:\n",
	}
	for _, c := range strong {
		lines = append(lines, fmt.Sprintf("- %s | Score %.1f | %s yrs | Skills: %s",
			candidateName(c), c.FinalScore, formatYears(c.TotalExperience), joinSkills(c.Skills)))
	}
	lines = append(lines, "\nPlease review and confirm who should be scheduled.\n")
	lines = append(lines, "Regards,\nHR Screening Agent")
	return strings.Join(lines, "\n")
}

// Explanation produces the heuristic per-candidate score explanation. It is
// template filling over extracted signals, not model output.
func Explanation(c domain.Candidate) string {
	parts := []string{
		fmt.Sprintf("%s has a score of %.1f based on skill, experience, and JD similarity.", candidateName(c), c.FinalScore),
	}
	if len(c.Skills) > 0 {
		parts = append(parts, fmt.Sprintf("Key skills found: %s.", joinSkills(c.Skills)))
	}
	if c.TotalExperience != nil {
		parts = append(parts, fmt.Sprintf("Reported experience: %s years.", formatYears(c.TotalExperience)))
	}
	parts = append(parts, "This is a heuristic explanation derived from extracted resume signals.")
	return strings.Join(parts, " ")
}

// InterviewQuestions returns the fixed screening question block offered
// alongside each shortlist.
func InterviewQuestions() string {
	return "- Can you walk me through a recent project that closely matches this job description?\n" +
		"- Which of your skills do you think are the strongest fit for this role, and why?\n" +
		"- Tell me about a challenge you faced in a previous role and how you handled it."
}

// RoleTitle derives a role title from the job description: the first line,
// when it is short enough to plausibly be a title.
func RoleTitle(jdText string) string {
	trimmed := strings.TrimSpace(jdText)
	if trimmed == "" {
		return defaultRoleTitle
	}
	firstLine := strings.TrimSpace(strings.SplitN(trimmed, "\n", 2)[0])
	if firstLine == "" || len(firstLine) >= maxRoleTitleLength {
		return defaultRoleTitle
	}
	return firstLine
}

func candidateName(c domain.Candidate) string {
	if c.FileName != "" {
		return c.FileName
	}
	return "Candidate"
}

func joinSkills(skills []string) string {
	if len(skills) > maxListedSkills {
		skills = skills[:maxListedSkills]
	}
	return strings.Join(skills, ", ")
}

func formatYears(y *float64) string {
	if y == nil {
		return "n/a"
	}
	return strconvTrim(*y)
}

// strconvTrim renders years without a trailing ".0" for whole values.
func strconvTrim(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	return strings.TrimSuffix(s, ".0")
}
