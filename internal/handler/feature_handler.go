package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"propertyhub-api/internal/dto"
	"propertyhub-api/internal/repository"
	"propertyhub-api/pkg/logger"
)

// FeatureHandler serves the /api/feature surface. Like addresses, feature
// blocks only exist embedded in properties and follow the same singleton
// rules. Individual scores are nullable; a property can carry a feature block
// with only some scores filled in.
type FeatureHandler struct {
	features   repository.FeatureRepository
	properties repository.PropertyRepository
}

func NewFeatureHandler(features repository.FeatureRepository, properties repository.PropertyRepository) *FeatureHandler {
	return &FeatureHandler{features: features, properties: properties}
}

// GetAll handles GET /api/feature
func (h *FeatureHandler) GetAll(c echo.Context) error {
	log := logger.FromContext(c)

	features, err := h.features.GetAll(c.Request().Context())
	if err != nil {
		log.Error("Failed to query features", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve features"})
	}
	if len(features) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No features found"})
	}
	return c.JSON(http.StatusOK, dto.FeaturesToDto(features))
}

// GetByWalkScore handles GET /api/feature/walkScore/:score (floor)
func (h *FeatureHandler) GetByWalkScore(c echo.Context) error {
	score, ok := parseScore(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid score"})
	}
	properties, err := h.features.GetPropertiesByMinWalkScore(c.Request().Context(), score)
	return respondList(c, properties, err)
}

// GetByTransitScore handles GET /api/feature/transitScore/:score (floor)
func (h *FeatureHandler) GetByTransitScore(c echo.Context) error {
	score, ok := parseScore(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid score"})
	}
	properties, err := h.features.GetPropertiesByMinTransitScore(c.Request().Context(), score)
	return respondList(c, properties, err)
}

// GetByBikeScore handles GET /api/feature/bikeScore/:score (floor)
func (h *FeatureHandler) GetByBikeScore(c echo.Context) error {
	score, ok := parseScore(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid score"})
	}
	properties, err := h.features.GetPropertiesByMinBikeScore(c.Request().Context(), score)
	return respondList(c, properties, err)
}

// GetByEducationScore handles GET /api/feature/educationScore/:score (floor)
func (h *FeatureHandler) GetByEducationScore(c echo.Context) error {
	score, ok := parseScore(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid score"})
	}
	properties, err := h.features.GetPropertiesByMinEducationScore(c.Request().Context(), score)
	return respondList(c, properties, err)
}

// Add handles POST /api/feature/:mls/feature. Fails with 409 when the
// property already carries a feature block.
func (h *FeatureHandler) Add(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	var req dto.FeatureDto
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid feature request", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := h.features.Add(c.Request().Context(), mls, dto.FeatureFromDto(req)); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " not found"})
		case errors.Is(err, repository.ErrAlreadyExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Property with MLS " + mls + " already has features"})
		}
		log.Error("Failed to add feature", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while adding the features"})
	}

	log.Info("Feature added", zap.String("mls", mls))
	return c.JSON(http.StatusOK, echo.Map{"message": "Features added to property " + mls})
}

// Update handles PUT /api/feature/:mls/updateFeature, replacing the feature
// block wholesale. Fails with 404 when the property has no feature block yet.
func (h *FeatureHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	var req dto.FeatureDto
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid feature request", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := h.features.Update(c.Request().Context(), mls, dto.FeatureFromDto(req)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " has no features to update"})
		}
		log.Error("Failed to update feature", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while updating the features"})
	}

	log.Info("Feature updated", zap.String("mls", mls))
	return c.JSON(http.StatusOK, echo.Map{"message": "Features of property " + mls + " updated"})
}

// Patch handles PATCH /api/feature/:mls/updateFeature, applying a JSON-Patch
// document to the existing feature block.
func (h *FeatureHandler) Patch(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	body, err := io.ReadAll(c.Request().Body)
	if err != nil || len(body) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Patch document cannot be empty"})
	}
	patch, err := jsonpatch.DecodePatch(body)
	if err != nil {
		log.Warn("Invalid patch document", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid JSON-Patch document"})
	}

	property, err := h.properties.GetByMLS(c.Request().Context(), mls)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " not found"})
		}
		log.Error("Failed to fetch property for feature patch", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch property"})
	}
	if property.Feature == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No features available to update"})
	}

	target := dto.FeatureToDto(*property.Feature)
	targetJSON, err := json.Marshal(target)
	if err != nil {
		log.Error("Failed to marshal patch target", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to apply patch"})
	}
	patchedJSON, err := patch.Apply(targetJSON)
	if err != nil {
		log.Warn("Patch application failed", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed to apply patch: " + err.Error()})
	}

	var patched dto.FeatureDto
	if err := json.Unmarshal(patchedJSON, &patched); err != nil {
		log.Warn("Patched document does not match the feature shape", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Patched document is invalid"})
	}

	if err := h.features.Update(c.Request().Context(), mls, dto.FeatureFromDto(patched)); err != nil {
		log.Error("Failed to persist patched feature", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while updating the features"})
	}

	log.Info("Feature patched", zap.String("mls", mls))
	return c.JSON(http.StatusOK, echo.Map{"message": "Features of property " + mls + " updated"})
}

// Delete handles DELETE /api/feature/:mls/deleteFeature. Idempotent like
// address deletion.
func (h *FeatureHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	if err := h.features.Delete(c.Request().Context(), mls); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " not found"})
		}
		log.Error("Failed to delete feature", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while deleting the features"})
	}

	log.Info("Feature deleted", zap.String("mls", mls))
	return c.JSON(http.StatusOK, echo.Map{"message": "Features removed from property " + mls})
}

func parseScore(c echo.Context) (int, bool) {
	score, err := strconv.Atoi(c.Param("score"))
	if err != nil {
		return 0, false
	}
	return score, true
}
