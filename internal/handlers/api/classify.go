package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"keywordmatrix/internal/classifier"
	"keywordmatrix/internal/ingest"
	"keywordmatrix/internal/models"
	"keywordmatrix/internal/runner"
	"keywordmatrix/internal/validation"
)

// ClassifyHandler classifies keywords via JSON API.
type ClassifyHandler struct {
	runner *runner.Runner
}

// NewClassifyHandler creates a new API classify handler.
func NewClassifyHandler(r *runner.Runner) *ClassifyHandler {
	return &ClassifyHandler{runner: r}
}

type classifyRequest struct {
	Records  []models.KeywordRecord `json:"records"`
	Keywords []string               `json:"keywords"`
}

type classifyResponse struct {
	Run     models.RunSummary         `json:"run"`
	Records []models.ClassifiedRecord `json:"records"`
}

// Classify accepts either multipart spreadsheets under "files" or a JSON body
// of records or bare keywords, and stores the resulting run.
func (h *ClassifyHandler) Classify(c fiber.Ctx) error {
	var (
		run *models.Run
		err error
	)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		run, err = h.classifyUpload(c)
	} else {
		run, err = h.classifyJSON(c)
	}
	if err != nil {
		return classifyError(c, err)
	}

	return Success(c, fiber.StatusCreated, classifyResponse{Run: run.Summary(), Records: run.Records})
}

func (h *ClassifyHandler) classifyUpload(c fiber.Ctx) (*models.Run, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, &runner.UploadError{Name: "files", Message: "invalid multipart form"}
	}

	files, closeAll, err := runner.OpenUploads(form.File["files"])
	defer closeAll()
	if err != nil {
		return nil, err
	}
	return h.runner.FromFiles(c.Context(), models.SourceAPI, files)
}

func (h *ClassifyHandler) classifyJSON(c fiber.Ctx) (*models.Run, error) {
	var body classifyRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return nil, errInvalidBody
	}

	records := body.Records
	for _, kw := range body.Keywords {
		records = append(records, models.KeywordRecord{RawKeyword: kw})
	}
	if len(records) == 0 {
		return nil, runner.ErrNoInput
	}
	if len(records) > validation.MaxRecords {
		return nil, errTooManyRecords
	}
	for _, r := range records {
		if ok, msg := validation.ValidateKeyword(r.RawKeyword); !ok {
			return nil, &runner.UploadError{Name: r.RawKeyword, Message: msg}
		}
	}

	return h.runner.FromRecords(c.Context(), models.SourceAPI, nil, records, nil)
}

// Explain returns the pass-by-pass classification trace of one keyword.
func (h *ClassifyHandler) Explain(c fiber.Ctx) error {
	keyword := c.Query("keyword")
	if ok, msg := validation.ValidateKeyword(keyword); !ok {
		return Failure(c, fiber.StatusBadRequest, msg)
	}
	return Success(c, fiber.StatusOK, classifier.Explain(h.runner.Registry(), keyword))
}

var (
	errInvalidBody    = errors.New("invalid request body")
	errTooManyRecords = errors.New("too many records")
)

func classifyError(c fiber.Ctx, err error) error {
	var uploadErr *runner.UploadError
	var ingestErr *ingest.Error
	switch {
	case errors.As(err, &uploadErr):
		return Failure(c, fiber.StatusBadRequest, uploadErr.Error())
	case errors.As(err, &ingestErr):
		return Failure(c, fiber.StatusUnprocessableEntity, ingestErr.Error())
	case errors.Is(err, runner.ErrNoInput),
		errors.Is(err, runner.ErrTooManyFiles),
		errors.Is(err, errInvalidBody),
		errors.Is(err, errTooManyRecords):
		return Failure(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, runner.ErrNoKeywords):
		return Failure(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	slog.Error("classification failed", "error", err)
	return Failure(c, fiber.StatusInternalServerError, "failed to classify keywords")
}
