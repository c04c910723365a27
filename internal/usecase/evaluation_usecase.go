package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/rghose/resume-screener/internal/evaluator"
	"github.com/rghose/resume-screener/internal/loader"
	"github.com/rghose/resume-screener/internal/model"
	"github.com/rghose/resume-screener/internal/prompt"
	"github.com/rghose/resume-screener/internal/repository"
	"github.com/rghose/resume-screener/internal/service"
)

// CandidateFile is one uploaded CV: the original filename plus where
// it was saved on disk.
type CandidateFile struct {
	Name string
	Path string
}

// BatchRequest describes one screening run: a job description, the
// rubric, and the candidate files to evaluate against it.
type BatchRequest struct {
	JobTitle       string
	JDText         string
	Weights        prompt.Weights
	CriticalSkills []string
	Files          []CandidateFile
}

// BatchResult pairs the persisted record with the optional
// strengths/weaknesses analysis, which is rendered but never stored.
type BatchResult struct {
	Record   model.CandidateEvaluation
	Analysis string
}

// EvaluationUsecase runs the two-phase screening pipeline. Each
// candidate moves through extraction then scoring; a failure at any
// point downgrades that candidate to a default-valued record instead
// of aborting the batch.
type EvaluationUsecase struct {
	repo *repository.EvaluationRepository
	llm  service.LLMClient
}

func NewEvaluationUsecase(repo *repository.EvaluationRepository, llm service.LLMClient) *EvaluationUsecase {
	return &EvaluationUsecase{repo: repo, llm: llm}
}

// EvaluateBatch processes candidates sequentially: each needs two
// dependent model calls, and per-candidate isolation is the only
// reliability mechanism. Every input file produces exactly one
// record, including files that fail to extract.
func (uc *EvaluationUsecase) EvaluateBatch(ctx context.Context, req BatchRequest) ([]BatchResult, error) {
	if strings.TrimSpace(req.JDText) == "" {
		return nil, fmt.Errorf("job description text is empty")
	}

	results := make([]BatchResult, 0, len(req.Files))
	for i, f := range req.Files {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		log.Printf("Evaluating candidate %d/%d: %s", i+1, len(req.Files), f.Name)
		res := uc.evaluateCandidate(ctx, req, f)

		if uc.repo != nil {
			if err := uc.repo.Create(&res.Record); err != nil {
				log.Printf("Failed to persist evaluation for %s: %v", f.Name, err)
			}
		}
		results = append(results, res)
	}
	return results, nil
}

func (uc *EvaluationUsecase) evaluateCandidate(ctx context.Context, req BatchRequest, f CandidateFile) BatchResult {
	rec := model.CandidateEvaluation{
		JobTitle:      req.JobTitle,
		CandidateName: nameFromFilename(f.Name),
		FitLevel:      model.FitLow,
	}

	cvText, err := loader.Extract(f.Path)
	if err != nil {
		rec.Rationale = fmt.Sprintf("Extraction failed for %s: %v", f.Name, err)
		rec.EvaluatedAt = time.Now().UTC()
		return BatchResult{Record: rec}
	}
	if name := nameFromCV(cvText); name != "" {
		rec.CandidateName = name
	}

	// Extracting: facts only, no judgment.
	factsRaw, err := uc.llm.GenerateFacts(ctx, prompt.Extraction(req.JDText, cvText))
	if err != nil {
		rec.Rationale = fmt.Sprintf("Foundational analysis failed: %v", err)
		rec.EvaluatedAt = time.Now().UTC()
		return BatchResult{Record: rec}
	}
	facts := evaluator.ParseFacts(factsRaw)

	// Scoring: the rubric applied to the extracted facts.
	var analysis string
	tableRaw, err := uc.llm.Generate(ctx, prompt.Scoring(facts.JSON(), req.Weights, req.CriticalSkills))
	if err == nil {
		if parsed := evaluator.ParseScoreTable(tableRaw); parsed.ScoreFound {
			rec.Score = parsed.Score
			rec.FitLevel = parsed.Fit
			rec.Rationale = parsed.Rationale
			rec.MatchedSkills = parsed.MatchedSkills
			rec.MissingSkills = parsed.MissingSkills
			rec.Qualifications = parsed.Qualifications
			rec.Achievements = parsed.Achievements
			rec.EvaluatedAt = time.Now().UTC()

			if a, aErr := uc.llm.Generate(ctx, prompt.Analysis(facts.JSON(), req.JDText)); aErr == nil {
				analysis = a
			} else {
				log.Printf("Strengths/weaknesses analysis failed for %s: %v", f.Name, aErr)
			}
			return BatchResult{Record: rec, Analysis: analysis}
		}
		log.Printf("No parseable score in model output for %s, using fallback scoring", f.Name)
	} else {
		log.Printf("Scoring call failed for %s, using fallback scoring: %v", f.Name, err)
	}

	// Scoring pass failed but extraction succeeded: compute a
	// deterministic score from the facts rather than defaulting to 0.
	score, fit, rationale := evaluator.FallbackScore(facts, cvText, req.Weights, req.CriticalSkills)
	rec.Score = score
	rec.FitLevel = fit
	rec.Rationale = rationale
	rec.MatchedSkills = strings.Join(facts.MatchedSkills, ", ")
	rec.MissingSkills = strings.Join(facts.MissingSkills, ", ")
	rec.Qualifications = strings.Join(facts.Qualifications, ", ")
	rec.Achievements = strings.Join(facts.Achievements, ", ")
	rec.EvaluatedAt = time.Now().UTC()
	return BatchResult{Record: rec}
}

// nameFromCV takes the first short, digit-free line near the top of
// the CV as the candidate name. Best effort; empty when nothing looks
// like a name.
func nameFromCV(cvText string) string {
	lines := strings.Split(cvText, "\n")
	for i, line := range lines {
		if i >= 5 {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 1 || len(words) > 5 || len(line) > 60 {
			continue
		}
		if strings.ContainsAny(line, "@./:") {
			continue
		}
		hasDigit := false
		for _, r := range line {
			if unicode.IsDigit(r) {
				hasDigit = true
				break
			}
		}
		if hasDigit {
			continue
		}
		return line
	}
	return ""
}

func nameFromFilename(filename string) string {
	base := filename
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(base))
}
