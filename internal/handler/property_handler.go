package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"propertyhub-api/internal/dto"
	"propertyhub-api/internal/model"
	"propertyhub-api/internal/repository"
	"propertyhub-api/internal/storage"
	"propertyhub-api/pkg/logger"
	"propertyhub-api/prometheus"
)

// PropertyHandler serves the /api/property surface: CRUD, single-dimension
// filters, JSON-Patch, and image management.
type PropertyHandler struct {
	properties repository.PropertyRepository
	files      storage.FileStorage
}

func NewPropertyHandler(properties repository.PropertyRepository, files storage.FileStorage) *PropertyHandler {
	return &PropertyHandler{properties: properties, files: files}
}

// respondList maps a filter result to the wire: 500 on store failure, 404 on
// an empty result set, 200 with DTOs otherwise.
func respondList(c echo.Context, properties []model.Property, err error) error {
	log := logger.FromContext(c)
	if err != nil {
		log.Error("Failed to query properties", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve properties"})
	}
	if len(properties) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No properties found"})
	}
	return c.JSON(http.StatusOK, dto.PropertiesToDto(properties))
}

// List handles GET /api/property
func (h *PropertyHandler) List(c echo.Context) error {
	properties, err := h.properties.GetAll(c.Request().Context())
	return respondList(c, properties, err)
}

// GetByMLS handles GET /api/property/:mls
func (h *PropertyHandler) GetByMLS(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	property, err := h.properties.GetByMLS(c.Request().Context(), mls)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " not found"})
		}
		log.Error("Failed to fetch property", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch property"})
	}
	return c.JSON(http.StatusOK, dto.PropertyToDto(*property))
}

// GetByType handles GET /api/property/type/:type
func (h *PropertyHandler) GetByType(c echo.Context) error {
	properties, err := h.properties.GetByType(c.Request().Context(), c.Param("type"))
	return respondList(c, properties, err)
}

// GetByPrice handles GET /api/property/price/:price (price ceiling)
func (h *PropertyHandler) GetByPrice(c echo.Context) error {
	price, err := strconv.ParseFloat(c.Param("price"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid price"})
	}
	properties, err := h.properties.GetByMaxPrice(c.Request().Context(), price)
	return respondList(c, properties, err)
}

// GetByBedrooms handles GET /api/property/bedrooms/:bedrooms (floor)
func (h *PropertyHandler) GetByBedrooms(c echo.Context) error {
	bedrooms, err := strconv.Atoi(c.Param("bedrooms"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid bedrooms"})
	}
	properties, err := h.properties.GetByMinBedrooms(c.Request().Context(), bedrooms)
	return respondList(c, properties, err)
}

// GetByBathrooms handles GET /api/property/bathrooms/:bathrooms (floor)
func (h *PropertyHandler) GetByBathrooms(c echo.Context) error {
	bathrooms, err := strconv.Atoi(c.Param("bathrooms"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid bathrooms"})
	}
	properties, err := h.properties.GetByMinBathrooms(c.Request().Context(), bathrooms)
	return respondList(c, properties, err)
}

// GetByParkings handles GET /api/property/parkings/:parkings (floor)
func (h *PropertyHandler) GetByParkings(c echo.Context) error {
	parkings, err := strconv.Atoi(c.Param("parkings"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid parkings"})
	}
	properties, err := h.properties.GetByMinParkings(c.Request().Context(), parkings)
	return respondList(c, properties, err)
}

// GetBySize handles GET /api/property/size/:size (floor)
func (h *PropertyHandler) GetBySize(c echo.Context) error {
	size, err := strconv.Atoi(c.Param("size"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid size"})
	}
	properties, err := h.properties.GetByMinSize(c.Request().Context(), size)
	return respondList(c, properties, err)
}

// GetByYearBuilt handles GET /api/property/yearBuilt/:yearBuilt (ceiling)
func (h *PropertyHandler) GetByYearBuilt(c echo.Context) error {
	yearBuilt, err := strconv.Atoi(c.Param("yearBuilt"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid yearBuilt"})
	}
	properties, err := h.properties.GetByMaxYearBuilt(c.Request().Context(), yearBuilt)
	return respondList(c, properties, err)
}

// GetByTax handles GET /api/property/tax/:tax (ceiling)
func (h *PropertyHandler) GetByTax(c echo.Context) error {
	tax, err := strconv.ParseFloat(c.Param("tax"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid tax"})
	}
	properties, err := h.properties.GetByMaxTax(c.Request().Context(), tax)
	return respondList(c, properties, err)
}

// GetByStatus handles GET /api/property/status/:status
func (h *PropertyHandler) GetByStatus(c echo.Context) error {
	properties, err := h.properties.GetByStatus(c.Request().Context(), c.Param("status"))
	return respondList(c, properties, err)
}

// Create handles POST /api/property
func (h *PropertyHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req dto.PropertyCreateDto
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid property creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Property creation validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	property := dto.PropertyFromCreateDto(req)
	if err := h.properties.Create(c.Request().Context(), property); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			log.Warn("Property already exists", zap.String("mls", req.MLS))
			return c.JSON(http.StatusConflict, echo.Map{"error": "Property with MLS " + req.MLS + " already exists"})
		}
		log.Error("Failed to create property", zap.String("mls", req.MLS), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while creating the property"})
	}

	prometheus.RecordPropertyOperation("create")
	log.Info("Property created", zap.String("mls", property.MLS), zap.String("type", property.Type))
	return c.JSON(http.StatusOK, echo.Map{"message": "Property added successfully"})
}

// Update handles PUT /api/property/:mls. PUT is a full replacement: every
// mutable field takes the DTO value and fields absent from the body reset to
// their zero value. MLS and dateListed are preserved; lastUpdate is stamped.
func (h *PropertyHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	var req dto.PropertyUpdateDto
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid property update request", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	property, err := h.properties.GetByMLS(c.Request().Context(), mls)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " not found"})
		}
		log.Error("Failed to fetch property for update", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch property"})
	}

	dto.OverwriteProperty(property, req)
	if err := h.properties.Update(c.Request().Context(), property); err != nil {
		log.Error("Failed to update property", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while updating the property"})
	}

	prometheus.RecordPropertyOperation("update")
	log.Info("Property updated", zap.String("mls", mls))
	return c.JSON(http.StatusOK, echo.Map{"message": "Property updated successfully"})
}

// Patch handles PATCH /api/property/:mls. The entity is mapped to a fully
// populated update DTO, the JSON-Patch document is applied to it, the result
// is re-validated and merged back sparsely.
func (h *PropertyHandler) Patch(c echo.Context) error {
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
		log.Error("Failed to fetch property for patch", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch property"})
	}

	target := dto.PropertyToUpdateDto(*property)
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

	var patched dto.PropertyUpdateDto
	if err := json.Unmarshal(patchedJSON, &patched); err != nil {
		log.Warn("Patched document does not match the update shape", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Patched document is invalid"})
	}
	if err := c.Validate(&patched); err != nil {
		log.Warn("Patched document failed validation", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	dto.MergeProperty(property, patched)
	if err := h.properties.Update(c.Request().Context(), property); err != nil {
		log.Error("Failed to persist patched property", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while updating the property"})
	}

	prometheus.RecordPropertyOperation("patch")
	log.Info("Property patched", zap.String("mls", mls))
	return c.JSON(http.StatusOK, echo.Map{"message": "Property updated successfully"})
}

// Delete handles DELETE /api/property/:mls. The record is deleted first and
// the stored images are reclaimed afterwards; an image that fails to delete
// is logged and left behind rather than blocking the record deletion.
func (h *PropertyHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	property, err := h.properties.GetByMLS(c.Request().Context(), mls)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " not found"})
		}
		log.Error("Failed to fetch property for deletion", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch property"})
	}

	if err := h.properties.Delete(c.Request().Context(), mls); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " not found"})
		}
		log.Error("Failed to delete property", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while deleting the property"})
	}

	for _, imageURL := range property.ImageUrls {
		if err := h.files.Delete(c.Request().Context(), imageURL); err != nil {
			log.Error("Failed to reclaim property image", zap.String("mls", mls), zap.String("url", imageURL), zap.Error(err))
			continue
		}
		prometheus.ImageDeletesCounter.Inc()
	}

	prometheus.RecordPropertyOperation("delete")
	log.Info("Property deleted", zap.String("mls", mls), zap.Int("images", len(property.ImageUrls)))
	return c.JSON(http.StatusOK, echo.Map{"message": "Property and associated images deleted successfully"})
}

// AddImages handles POST /api/property/:mls/images (multipart, field "images")
func (h *PropertyHandler) AddImages(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	property, err := h.properties.GetByMLS(c.Request().Context(), mls)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " not found"})
		}
		log.Error("Failed to fetch property for image upload", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch property"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid multipart form"})
	}
	uploads := form.File["images"]
	if len(uploads) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No files were selected for upload"})
	}

	for _, upload := range uploads {
		src, err := upload.Open()
		if err != nil {
			log.Error("Failed to open uploaded file", zap.String("filename", upload.Filename), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while adding property images"})
		}
		imageURL, err := h.files.Upload(c.Request().Context(), upload.Filename, src, upload.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			log.Error("Failed to upload image", zap.String("filename", upload.Filename), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while adding property images"})
		}
		property.ImageUrls = append(property.ImageUrls, imageURL)
		prometheus.ImageUploadsCounter.Inc()
	}

	property.LastUpdate = time.Now().UTC()
	if err := h.properties.Update(c.Request().Context(), property); err != nil {
		log.Error("Failed to save property images", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error updating property images in the database"})
	}

	log.Info("Property images added", zap.String("mls", mls), zap.Int("count", len(uploads)))
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Property images added successfully",
		"property": dto.PropertyToDto(*property),
	})
}

// ReplaceImage handles PUT /api/property/:mls/images (form fields
// "existingImageUrl" and file "newImage")
func (h *PropertyHandler) ReplaceImage(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	property, err := h.properties.GetByMLS(c.Request().Context(), mls)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " not found"})
		}
		log.Error("Failed to fetch property for image replacement", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch property"})
	}

	existingImageURL := c.FormValue("existingImageUrl")
	if existingImageURL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Existing image URL is required"})
	}
	upload, err := c.FormFile("newImage")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "New image file is required"})
	}

	index := slices.Index(property.ImageUrls, existingImageURL)
	if index == -1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "The specified existing image URL does not match any images of the property"})
	}

	src, err := upload.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.String("filename", upload.Filename), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while replacing the property image"})
	}
	defer src.Close()

	newImageURL, err := h.files.Upload(c.Request().Context(), upload.Filename, src, upload.Header.Get("Content-Type"))
	if err != nil {
		log.Error("Failed to upload replacement image", zap.String("filename", upload.Filename), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while replacing the property image"})
	}
	prometheus.ImageUploadsCounter.Inc()

	property.ImageUrls[index] = newImageURL
	property.LastUpdate = time.Now().UTC()
	if err := h.properties.Update(c.Request().Context(), property); err != nil {
		log.Error("Failed to save replaced image", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error updating the property image in the database"})
	}

	log.Info("Property image replaced", zap.String("mls", mls), zap.String("url", newImageURL))
	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Property image replaced successfully",
		"newImageUrl": newImageURL,
	})
}

// DeleteImages handles DELETE /api/property/:mls/images (body: list of URLs)
func (h *PropertyHandler) DeleteImages(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	property, err := h.properties.GetByMLS(c.Request().Context(), mls)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " not found"})
		}
		log.Error("Failed to fetch property for image deletion", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch property"})
	}

	var req struct {
		ImageUrls []string `json:"imageUrls"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if len(req.ImageUrls) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No image URLs provided"})
	}

	remaining := make([]string, 0, len(property.ImageUrls))
	removed := 0
	for _, imageURL := range property.ImageUrls {
		if !slices.Contains(req.ImageUrls, imageURL) {
			remaining = append(remaining, imageURL)
			continue
		}
		if err := h.files.Delete(c.Request().Context(), imageURL); err != nil {
			log.Error("Failed to delete image from storage", zap.String("url", imageURL), zap.Error(err))
		} else {
			prometheus.ImageDeletesCounter.Inc()
		}
		removed++
	}
	if removed == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "None of the provided image URLs match the property's images"})
	}

	property.ImageUrls = remaining
	property.LastUpdate = time.Now().UTC()
	if err := h.properties.Update(c.Request().Context(), property); err != nil {
		log.Error("Failed to save property after image deletion", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while updating the property"})
	}

	log.Info("Property images deleted", zap.String("mls", mls), zap.Int("count", removed))
	return c.JSON(http.StatusOK, echo.Map{"message": "Images successfully deleted from property " + mls})
}
