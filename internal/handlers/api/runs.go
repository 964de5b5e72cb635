package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"keywordmatrix/internal/classifier"
	"keywordmatrix/internal/models"
	"keywordmatrix/internal/store"
	"keywordmatrix/internal/validation"
)

// RunHandler reads stored runs via JSON API.
type RunHandler struct {
	store store.Store
	topN  int
}

// NewRunHandler creates a new API run handler.
func NewRunHandler(s store.Store, topN int) *RunHandler {
	return &RunHandler{store: s, topN: topN}
}

// loadRun resolves :id, accepting "latest" for the most recent run.
func (h *RunHandler) loadRun(c fiber.Ctx) (*models.Run, error) {
	raw := c.Params("id")
	if raw == "latest" {
		return h.store.Latest(c.Context())
	}
	id, ok := validation.ParseRunID(raw)
	if !ok {
		return nil, errInvalidRunID
	}
	return h.store.Get(c.Context(), id)
}

var errInvalidRunID = errors.New("invalid run id")

func runError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errInvalidRunID):
		return Failure(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrRunNotFound):
		return Failure(c, fiber.StatusNotFound, "run not found")
	}
	return Failure(c, fiber.StatusInternalServerError, "failed to load run")
}

// Get returns a run summary with every classified record.
func (h *RunHandler) Get(c fiber.Ctx) error {
	run, err := h.loadRun(c)
	if err != nil {
		return runError(c, err)
	}
	return Success(c, fiber.StatusOK, classifyResponse{Run: run.Summary(), Records: run.Records})
}

type statsResponse struct {
	Stats   []models.CategoryStats                 `json:"stats"`
	Classes map[models.PrimaryClass]int            `json:"classes"`
	Details map[models.Bucket][]models.DetailCount `json:"details"`
}

// Stats returns per-bucket aggregates, class counts and detail label counts.
func (h *RunHandler) Stats(c fiber.Ctx) error {
	run, err := h.loadRun(c)
	if err != nil {
		return runError(c, err)
	}

	resp := statsResponse{
		Stats:   run.Summary().Stats,
		Classes: classifier.CountByClass(run.Records),
		Details: make(map[models.Bucket][]models.DetailCount),
	}
	for _, b := range models.BucketOrder {
		if d := classifier.DetailCounts(run.Records, b); len(d) > 0 {
			resp.Details[b] = d
		}
	}
	return Success(c, fiber.StatusOK, resp)
}

// Top returns the first n records sorted descending by the sort key,
// optionally limited to one bucket.
func (h *RunHandler) Top(c fiber.Ctx) error {
	key, ok := classifier.ParseSortKey(c.Query("sort"))
	if !ok {
		return Failure(c, fiber.StatusBadRequest, "invalid sort key")
	}
	n, ok := validation.ParseTopN(c.Query("n"), h.topN)
	if !ok {
		return Failure(c, fiber.StatusBadRequest, "invalid n")
	}

	var bucket models.Bucket
	if raw := c.Query("bucket"); raw != "" {
		b, ok := models.ParseBucket(raw)
		if !ok {
			return Failure(c, fiber.StatusBadRequest, "invalid bucket")
		}
		bucket = b
	}

	run, err := h.loadRun(c)
	if err != nil {
		return runError(c, err)
	}

	records := run.Records
	if bucket != "" {
		records = classifier.Filter(records, classifier.InBucket(bucket))
	}
	return Success(c, fiber.StatusOK, classifier.TopN(records, key, n))
}
