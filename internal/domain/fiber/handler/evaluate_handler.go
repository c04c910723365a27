package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rghose/resume-screener/internal/config"
	"github.com/rghose/resume-screener/internal/dto"
	"github.com/rghose/resume-screener/internal/export"
	"github.com/rghose/resume-screener/internal/loader"
	"github.com/rghose/resume-screener/internal/middleware"
	"github.com/rghose/resume-screener/internal/prompt"
	"github.com/rghose/resume-screener/internal/repository"
	"github.com/rghose/resume-screener/internal/response"
	"github.com/rghose/resume-screener/internal/usecase"
	"github.com/rghose/resume-screener/internal/util"
)

const maxUploadSize = 5 * 1024 * 1024

type EvaluateHandler struct {
	uc   *usecase.EvaluationUsecase
	repo *repository.EvaluationRepository
}

func NewEvaluateHandler(uc *usecase.EvaluationUsecase, repo *repository.EvaluationRepository) *EvaluateHandler {
	return &EvaluateHandler{uc: uc, repo: repo}
}

func (h *EvaluateHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/evaluations", middleware.RateLimiter(1, 4*time.Second), h.Evaluate)
	app.Get("/evaluations", h.List)
	app.Get("/evaluations/top", h.Top)
	app.Get("/evaluations/export", h.Export)
}

// Evaluate runs a screening batch synchronously. The job description
// arrives as the "jd" file, the CVs as repeated "cvs" files.
func (h *EvaluateHandler) Evaluate(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "multipart form is required",
		}, err)
	}

	jdText, err := h.readJD(c, form)
	if err != nil {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: err.Error(),
		})
	}

	cvFiles := form.File["cvs"]
	if len(cvFiles) == 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "at least one cvs file is required",
		}, nil)
	}

	uploadDir := filepath.Join(config.LoadAppConfig().UploadDir, "cv")
	files := make([]usecase.CandidateFile, 0, len(cvFiles))
	for _, fh := range cvFiles {
		if fh.Size > maxUploadSize {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: fmt.Sprintf("%s is too large (max 5MB)", fh.Filename),
			}, nil)
		}
		savePath := filepath.Join(uploadDir, safeFilename(fh.Filename))
		if err := c.SaveFile(fh, savePath); err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: fmt.Sprintf("cannot save %s", fh.Filename),
			}, err)
		}
		files = append(files, usecase.CandidateFile{Name: fh.Filename, Path: savePath})
	}

	req := usecase.BatchRequest{
		JobTitle:       firstValue(form, "job_title"),
		JDText:         jdText,
		Weights:        weightsFromForm(form),
		CriticalSkills: splitSkills(firstValue(form, "critical_skills")),
		Files:          files,
	}

	results, err := h.uc.EvaluateBatch(c.Context(), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to evaluate candidates",
		}, err)
	}

	data := make([]fiber.Map, 0, len(results))
	for _, res := range results {
		entry := fiber.Map{"evaluation": dto.FromModel(res.Record)}
		if res.Analysis != "" {
			entry["analysis"] = res.Analysis
		}
		data = append(data, entry)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success evaluate candidates",
		Data:    data,
	})
}

func (h *EvaluateHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 50)
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	jobTitle := c.Query("job_title")

	recs, total, err := h.repo.List(jobTitle, page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list evaluations",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get evaluations",
		Data:       dto.FromModels(recs),
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *EvaluateHandler) Top(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	jobTitle := c.Query("job_title")

	recs, err := h.repo.TopCandidates(jobTitle, limit)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get top candidates",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get top candidates",
		Data:    dto.FromModels(recs),
	})
}

// Export streams the full evaluation set for a job title as csv
// (default) or xlsx.
func (h *EvaluateHandler) Export(c *fiber.Ctx) error {
	jobTitle := c.Query("job_title")
	format := strings.ToLower(c.Query("format", "csv"))

	recs, err := h.repo.ListByJob(jobTitle)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load evaluations",
		}, err)
	}

	var buf bytes.Buffer
	switch format {
	case "csv":
		err = export.WriteCSV(&buf, recs)
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="evaluations.csv"`)
	case "xlsx":
		err = export.WriteExcel(&buf, recs)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="evaluations.xlsx"`)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("unsupported format %q", format),
		}, nil)
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to build export",
		}, err)
	}

	return c.Send(buf.Bytes())
}

// readJD reads the job description from the "jd" upload, or the "jd"
// text field when no file was sent. Failures come back as errors so
// Evaluate writes the response exactly once; client mistakes carry a
// *fiber.Error with the right status code.
func (h *EvaluateHandler) readJD(c *fiber.Ctx, form *multipart.Form) (string, error) {
	if fhs := form.File["jd"]; len(fhs) > 0 {
		fh := fhs[0]
		if fh.Size > maxUploadSize {
			return "", fiber.NewError(fiber.StatusBadRequest, "jd file is too large (max 5MB)")
		}
		savePath := filepath.Join(config.LoadAppConfig().UploadDir, "jd", safeFilename(fh.Filename))
		if err := c.SaveFile(fh, savePath); err != nil {
			return "", fmt.Errorf("cannot save jd file: %w", err)
		}
		text, err := loader.Extract(savePath)
		if err != nil {
			// .txt job descriptions are common enough that a raw read
			// is worth trying before giving up.
			if raw, rerr := os.ReadFile(savePath); rerr == nil && len(raw) > 0 {
				return string(raw), nil
			}
			return "", fiber.NewError(fiber.StatusBadRequest, "failed to extract jd text")
		}
		return text, nil
	}

	if jd := firstValue(form, "jd"); strings.TrimSpace(jd) != "" {
		return jd, nil
	}

	return "", fiber.NewError(fiber.StatusBadRequest, "jd file or jd text field is required")
}

// safeFilename strips any client-supplied path segments so uploads
// cannot land outside the upload directory.
func safeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return filepath.Base(name)
}

func firstValue(form *multipart.Form, key string) string {
	if vals := form.Value[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// weightsFromForm overlays any submitted weight fields on the default
// rubric. Values are percentages.
func weightsFromForm(form *multipart.Form) prompt.Weights {
	w := prompt.DefaultWeights()
	set := func(key string, dst *int) {
		raw := firstValue(form, key)
		if raw == "" {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 100 {
			log.Printf("Ignoring invalid weight %s=%q", key, raw)
			return
		}
		*dst = v
	}
	set("skills_weight", &w.MatchedSkills)
	set("experience_weight", &w.ExperienceRelevance)
	set("qualifications_weight", &w.Qualifications)
	set("seniority_weight", &w.Seniority)
	set("clarity_weight", &w.CVClarity)
	return w
}

func splitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
