package handlers

import (
	"formguard/internal/dto"
	"formguard/internal/models"
	"formguard/internal/repository"
	"formguard/internal/service"
	"formguard/internal/vectorstore"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ValidationHandler struct {
	validationService *service.ValidationService
	validationRepo    *repository.ValidationRepository
	store             *vectorstore.Store
	logger            *zap.Logger
}

func NewValidationHandler(
	validationService *service.ValidationService,
	validationRepo *repository.ValidationRepository,
	store *vectorstore.Store,
	logger *zap.Logger,
) *ValidationHandler {
	return &ValidationHandler{
		validationService: validationService,
		validationRepo:    validationRepo,
		store:             store,
		logger:            logger,
	}
}

// Validate godoc
// @Summary Validate an extracted bank form
// @Description Check an extracted-field record for completeness and policy compliance
// @Tags validation
// @Accept json
// @Produce json
// @Param request body models.ExtractedFieldRecord true "Extracted form data"
// @Security Bearer
// @Success 200 {object} models.ValidationResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/validate [post]
func (h *ValidationHandler) Validate(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var record models.ExtractedFieldRecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result := h.validationService.Validate(c.Context(), userID, record)
	return c.JSON(result)
}

// RebuildIndex godoc
// @Summary Rebuild the policy index
// @Description Rebuild the embedding index from the policy corpus directory and persist it
// @Tags validation
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.RebuildIndexResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/index/rebuild [post]
func (h *ValidationHandler) RebuildIndex(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if err := h.validationService.RebuildFromDir(c.Context()); err != nil {
		h.logger.Error("Failed to rebuild index", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to rebuild index",
		})
	}

	return c.JSON(dto.RebuildIndexResponse{
		IndexedChunks: h.validationService.IndexSize(),
		Message:       "Policy index rebuilt",
	})
}

// SearchPolicies godoc
// @Summary Search the policy corpus
// @Description Free-text similarity search over indexed policy chunks
// @Tags validation
// @Produce json
// @Param q query string true "Search query"
// @Param top_k query int false "Number of results" default(5)
// @Security Bearer
// @Success 200 {array} dto.PolicySearchResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/policies/search [get]
func (h *ValidationHandler) SearchPolicies(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter q is required",
		})
	}
	topK := c.QueryInt("top_k", 5)

	results, err := h.store.Search(c.Context(), query, topK)
	if err != nil {
		h.logger.Error("Policy search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Policy search failed",
		})
	}

	out := make([]dto.PolicySearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, dto.PolicySearchResult{
			Rank:       r.Rank,
			Document:   r.Document,
			SourceFile: r.Meta.SourceFile,
			FormType:   r.Meta.FormType,
			Similarity: r.Similarity,
		})
	}
	return c.JSON(out)
}

// ListValidations godoc
// @Summary List validation history
// @Description Past verdicts for the authenticated user, newest first
// @Tags validation
// @Produce json
// @Param limit query int false "Limit" default(10)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.ValidationHistoryItem
// @Failure 401 {object} map[string]string
// @Router /api/v1/validations [get]
func (h *ValidationHandler) ListValidations(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	limit, offset := clampPage(c.QueryInt("limit", defaultHistoryLimit), c.QueryInt("offset", 0))

	records, err := h.validationRepo.ListByUser(c.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list validations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list validations",
		})
	}

	items := make([]dto.ValidationHistoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.ValidationHistoryItem{
			ID:                rec.ID.String(),
			FormType:          rec.FormType,
			Status:            rec.Status,
			CompletenessScore: rec.CompletenessScore,
			ComplianceScore:   rec.ComplianceScore,
			PoliciesChecked:   rec.PoliciesChecked,
			CreatedAt:         rec.CreatedAt,
		})
	}
	return c.JSON(items)
}

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// clampPage bounds user-supplied pagination: negative values convert to
// uint64 in the SQL builder and would explode the LIMIT/OFFSET.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return uuid.Parse(userIDStr)
}
