package screening

import "strings"

// minJDLength is the trimmed length below which a job description is
// flagged as too short to screen against meaningfully.
const minJDLength = 30

// JDAnalysis lists the issues found in a job description and the
// clarification questions the screener would ask the hiring manager.
type JDAnalysis struct {
	Issues    []string `json:"issues"`
	Questions []string `json:"questions"`
}

// AnalyzeJD inspects the job description for missing information. The three
// checks are independent; any subset may fire. Pure function, no side
// effects.
func AnalyzeJD(jdText string, requiredSkills []string, requiredYears float64) JDAnalysis {
	var a JDAnalysis

	if len(strings.TrimSpace(jdText)) < minJDLength {
		a.Issues = append(a.Issues, "Job description is very short. Add more context about responsibilities and required skills.")
	}

	if allBlank(requiredSkills) {
		a.Issues = append(a.Issues, "Required skills are missing or empty.")
		a.Questions = append(a.Questions, "What are the must-have skills for this role? (3-5 keywords)")
	}

	if requiredYears <= 0 {
		a.Issues = append(a.Issues, "Required experience not specified.")
		a.Questions = append(a.Questions, "How many years of experience is expected?")
	}

	return a
}

func allBlank(ss []string) bool {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
