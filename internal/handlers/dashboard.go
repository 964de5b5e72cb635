package handlers

import (
	"errors"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/gofiber/fiber/v3"

	"keywordmatrix/internal/classifier"
	"keywordmatrix/internal/config"
	"keywordmatrix/internal/export"
	"keywordmatrix/internal/ingest"
	"keywordmatrix/internal/matrix"
	"keywordmatrix/internal/models"
	"keywordmatrix/internal/runner"
	"keywordmatrix/internal/store"
	"keywordmatrix/internal/validation"
)

// DashboardHandler renders the matrix dashboard, accepts uploads and serves
// exports.
type DashboardHandler struct {
	runner *runner.Runner
	store  store.Store
	cfg    *config.Config
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(r *runner.Runner, s store.Store, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{runner: r, store: s, cfg: cfg}
}

// sortOption is one entry of the table sort selector.
type sortOption struct {
	Key      classifier.SortKey
	Label    string
	Selected bool
}

func sortOptions(selected classifier.SortKey) []sortOption {
	opts := make([]sortOption, 0, len(classifier.SortKeys))
	for _, k := range classifier.SortKeys {
		opts = append(opts, sortOption{Key: k, Label: k.Label(), Selected: k == selected})
	}
	return opts
}

func (h *DashboardHandler) runData(run *models.Run, key classifier.SortKey) fiber.Map {
	data := fiber.Map{
		"SortOptions": sortOptions(key),
		"Sort":        key,
		"TopN":        h.cfg.TopN,
	}
	if run != nil {
		data["Run"] = run
		data["Summary"] = run.Summary()
		data["Matrix"] = matrix.Build(run.Records, run.Stats)
		data["Sections"] = matrix.Sections(run.Records, run.Stats, key, h.cfg.TopN)
	}
	return data
}

func (h *DashboardHandler) render(c fiber.Ctx, run *models.Run, key classifier.SortKey, uploadErr string) error {
	data := h.runData(run, key)
	data["Title"] = "대시보드"
	data["User"] = c.Locals("user")
	data["Error"] = uploadErr
	return c.Render("index", MergeBranding(data, h.cfg))
}

func parseSort(c fiber.Ctx) (classifier.SortKey, error) {
	key, ok := classifier.ParseSortKey(c.Query("sort"))
	if !ok {
		return "", fiber.NewError(fiber.StatusBadRequest, "알 수 없는 정렬 기준입니다")
	}
	return key, nil
}

// loadRun resolves :id, accepting "latest" for the most recent run.
func (h *DashboardHandler) loadRun(c fiber.Ctx) (*models.Run, error) {
	raw := c.Params("id")
	var (
		run *models.Run
		err error
	)
	if raw == "latest" {
		run, err = h.store.Latest(c.Context())
	} else {
		id, ok := validation.ParseRunID(raw)
		if !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, "잘못된 실행 ID입니다")
		}
		run, err = h.store.Get(c.Context(), id)
	}

	if errors.Is(err, store.ErrRunNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "분류 결과가 만료되었거나 존재하지 않습니다")
	}
	if err != nil {
		slog.Error("failed to load run", "id", raw, "error", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "분류 결과를 불러오지 못했습니다")
	}
	return run, nil
}

// Index renders the dashboard for the most recent run, or the empty upload
// page when none is stored.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	key, err := parseSort(c)
	if err != nil {
		return err
	}

	run, err := h.store.Latest(c.Context())
	if err != nil && !errors.Is(err, store.ErrRunNotFound) {
		slog.Error("failed to load latest run", "error", err)
	}
	return h.render(c, run, key, "")
}

// Show renders the dashboard for one run.
func (h *DashboardHandler) Show(c fiber.Ctx) error {
	key, err := parseSort(c)
	if err != nil {
		return err
	}
	run, err := h.loadRun(c)
	if err != nil {
		return err
	}
	return h.render(c, run, key, "")
}

// Tables renders the per-bucket tables for HTMX when the sort key changes.
func (h *DashboardHandler) Tables(c fiber.Ctx) error {
	key, ok := classifier.ParseSortKey(c.Query("sort"))
	if !ok {
		return htmxError(c, "알 수 없는 정렬 기준입니다")
	}
	run, err := h.loadRun(c)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return htmxError(c, fe.Message)
		}
		return htmxError(c, err.Error())
	}
	return c.Render("partials/tables", h.runData(run, key), "")
}

// Upload classifies the uploaded spreadsheets and redirects to the new run.
func (h *DashboardHandler) Upload(c fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return h.uploadFailed(c, "업로드할 파일을 선택해 주세요")
	}

	files, closeAll, err := runner.OpenUploads(form.File["files"])
	defer closeAll()
	if err != nil {
		return h.uploadFailed(c, uploadMessage(err))
	}

	run, err := h.runner.FromFiles(c.Context(), models.SourceUpload, files)
	if err != nil {
		return h.uploadFailed(c, uploadMessage(err))
	}

	target := "/runs/" + run.ID.String()
	if isHTMX(c) {
		c.Set("HX-Redirect", target)
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Redirect().To(target)
}

func (h *DashboardHandler) uploadFailed(c fiber.Ctx, message string) error {
	if isHTMX(c) {
		return htmxError(c, message)
	}
	return h.render(c.Status(fiber.StatusBadRequest), nil, classifier.SortSearchVolume, message)
}

func uploadMessage(err error) string {
	var uploadErr *runner.UploadError
	var ingestErr *ingest.Error
	switch {
	case errors.As(err, &uploadErr):
		return uploadErr.Name + ": " + uploadErr.Message
	case errors.As(err, &ingestErr):
		if errors.Is(err, ingest.ErrNoKeywordColumn) {
			return ingestErr.Source + ": '" + ingest.ColKeyword + "' 컬럼이 없습니다"
		}
		return ingestErr.Error()
	case errors.Is(err, runner.ErrNoInput):
		return "업로드할 파일을 선택해 주세요"
	case errors.Is(err, runner.ErrNoKeywords):
		return "분류할 키워드가 없습니다"
	case errors.Is(err, runner.ErrTooManyFiles):
		return err.Error()
	}
	slog.Error("upload failed", "error", err)
	return "파일을 처리하지 못했습니다"
}

// ExportCSV downloads the classified records as UTF-8 CSV.
func (h *DashboardHandler) ExportCSV(c fiber.Ctx) error {
	run, err := h.loadRun(c)
	if err != nil {
		return err
	}
	setAttachment(c, export.CSVFileName, export.CSVContentType)
	return export.WriteCSV(c.Response().BodyWriter(), run.Records)
}

// ExportXLSX downloads the classified records and bucket summary as a workbook.
func (h *DashboardHandler) ExportXLSX(c fiber.Ctx) error {
	run, err := h.loadRun(c)
	if err != nil {
		return err
	}
	setAttachment(c, export.XLSXFileName, export.XLSXContentType)
	return export.WriteXLSX(c.Response().BodyWriter(), run.Records, run.Stats)
}

func setAttachment(c fiber.Ctx, name, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="keywordmatrix`+filepath.Ext(name)+`"; filename*=UTF-8''`+url.PathEscape(name))
}
