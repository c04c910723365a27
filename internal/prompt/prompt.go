// Package prompt renders the fixed instruction templates sent to the
// hosted model. The extraction and scoring templates are deliberately
// separate: the first pass gathers facts only, the second applies the
// rubric to those facts, so extraction noise never anchors the score.
package prompt

import (
	"fmt"
	"strings"
)

// Weights is the scoring rubric, expressed in percent. The zero value
// is not useful; start from DefaultWeights.
type Weights struct {
	MatchedSkills       int
	ExperienceRelevance int
	Qualifications      int
	Seniority           int
	CVClarity           int
}

func DefaultWeights() Weights {
	return Weights{
		MatchedSkills:       50,
		ExperienceRelevance: 20,
		Qualifications:      15,
		Seniority:           10,
		CVClarity:           5,
	}
}

const extractionTemplate = `You are a meticulous data extraction assistant. Your task is to analyze a candidate's CV against a job description (JD) and extract every single piece of relevant information. Do not perform any scoring or filtering. Your output must be a single, complete JSON object.

**JSON Schema:**
{
  "matched_skills_full": [STRING],
  "missing_skills_full": [STRING],
  "top_qualifications_full": [STRING],
  "quantifiable_achievements_full": [STRING],
  "relevant_experience_summary": STRING,
  "years_of_experience": NUMBER,
  "education_level": STRING
}

**Instructions:**
1. ` + "`matched_skills_full`" + `: List all skills from the JD present in the CV.
2. ` + "`missing_skills_full`" + `: List all skills from the JD not present in the CV.
3. ` + "`top_qualifications_full`" + `: List all relevant degrees, certifications, and licenses.
4. ` + "`quantifiable_achievements_full`" + `: Find and list all achievements with numbers, percentages, currency, or metrics.
5. ` + "`relevant_experience_summary`" + `: Provide a 1-2 paragraph summary of the candidate's work history as it relates directly to the JD's requirements.
6. ` + "`years_of_experience`" + `: Total years of professional experience (number).
7. ` + "`education_level`" + `: Highest degree earned (e.g., Bachelor's, Master's, PhD).

**JD:**
%s

**CV:**
%s
`

// Extraction builds the first-pass prompt. It instructs the model to
// return facts only, with no score of any kind.
func Extraction(jdText, cvText string) string {
	return fmt.Sprintf(extractionTemplate, jdText, cvText)
}

const scoringTemplate = `You are a strict HR evaluation engine. Your task is to evaluate a candidate based on a complete set of extracted data and provide a final, summarized evaluation in a Markdown table.
Apply heuristics to ensure the score is highly accurate and does not miss any critical connections.

**Evaluation Hierarchy Heuristic:**
1. **Prioritize Full-Time Experience:** Evaluate and score the candidate's full-time work experience first. This is the most important factor.
2. **Next, Consider Internships:** After full-time experience, evaluate relevant internships.
3. **Finally, Consider Projects and Certifications:** Use live projects, open-source work, and certifications as supporting evidence for skills and qualifications.

**Evaluation Rubric:**
* **Scoring (1-10):** Based on the provided data, apply a final weighted score. The score should reflect the overall balance between matched and missing skills, penalizing the absence of key skills but not disproportionately if a candidate is strong in other areas. The weighting is as follows:
    * All Matched Skills (%d%%)
    * Experience Summary Relevance (%d%%)
    * All Qualifications & Achievements (%d%%)
    * Overall Depth & Seniority (%d%%)
    * CV Clarity (%d%%)
* **Fit:** High (>=8), Medium (5-7), Low (<=4).
* **Rationale:** A single, concise, and factual sentence that directly explains why the score is high or low. For high scores, mention key strengths. For low scores, explicitly state which significant skills are missing.
* **Matched Skills:** A summarized list of the top 3-5 most important matched skills.
* **Missing Skills:** A summarized list of the top 3-5 most critical missing skills.
* **Top Qualifications:** A summarized list of the top 2 most impressive qualifications.
* **Quantifiable Achievements:** A summarized list of the top 2-3 most impactful achievements.

**Candidate Data:**
%s

**Output Table:**
You must produce a single Markdown table with the following headers in this exact order: ` + "`Score`, `Fit`, `Rationale`, `Matched Skills`, `Missing Skills`, `Top Qualifications`, `Quantifiable Achievements`" + `.

| Score | Fit | Rationale | Matched Skills | Missing Skills | Top Qualifications | Quantifiable Achievements |
|---|---|---|---|---|---|---|
`

const criticalSkillsClause = `
**Critical Skill Heuristic:**
* A candidate missing any of the following skills must have their score severely penalized, regardless of other factors. The score must be 4 or lower if any of these are missing: **%s**.
`

// Scoring builds the second-pass prompt from the extracted candidate
// facts (as JSON) and the rubric weights. When criticalSkills is
// non-empty the hard-cap clause is appended.
func Scoring(candidateDataJSON string, w Weights, criticalSkills []string) string {
	p := fmt.Sprintf(scoringTemplate,
		w.MatchedSkills,
		w.ExperienceRelevance,
		w.Qualifications,
		w.Seniority,
		w.CVClarity,
		candidateDataJSON,
	)
	if len(criticalSkills) > 0 {
		p += fmt.Sprintf(criticalSkillsClause, strings.Join(criticalSkills, ", "))
	}
	return p
}

const analysisTemplate = `You are an expert HR analyst. Based on the following candidate data and JD, provide a concise, professional analysis of the candidate's strengths and weaknesses.

**Instructions:**
* **Strengths:** Write a single paragraph (2-3 sentences) summarizing the candidate's top strengths. Focus on their most relevant skills, experience, and quantifiable achievements.
* **Weaknesses:** Write a single paragraph (2-3 sentences) summarizing their key weaknesses. Focus on critical missing skills, lack of relevant experience for the role, or other significant gaps.

**Candidate Data:**
%s

**JD:**
%s
`

// Analysis builds the optional strengths/weaknesses prompt.
func Analysis(candidateDataJSON, jdText string) string {
	return fmt.Sprintf(analysisTemplate, candidateDataJSON, jdText)
}

const questionTemplate = `You are a data analysis assistant. You have access to the following dataset:

%s

User Question: %s

Please analyze the data and provide a clear, concise answer to the question. If the question requires calculations or filtering, explain your reasoning. If the data doesn't contain enough information to answer the question, say so clearly.

Answer:`

// Question builds the spreadsheet Q&A prompt from a dataset summary
// and a free-text user question.
func Question(dataSummary, question string) string {
	return fmt.Sprintf(questionTemplate, dataSummary, question)
}
