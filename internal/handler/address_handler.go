package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"propertyhub-api/internal/dto"
	"propertyhub-api/internal/repository"
	"propertyhub-api/pkg/logger"
)

// AddressHandler serves the /api/address surface. Addresses only exist
// embedded in properties, so every write names the owning MLS and the
// singleton rules apply: add fails when present, update fails when absent,
// delete is idempotent.
type AddressHandler struct {
	addresses  repository.AddressRepository
	properties repository.PropertyRepository
}

func NewAddressHandler(addresses repository.AddressRepository, properties repository.PropertyRepository) *AddressHandler {
	return &AddressHandler{addresses: addresses, properties: properties}
}

// GetAll handles GET /api/address and projects the address of every property
// that has one.
func (h *AddressHandler) GetAll(c echo.Context) error {
	log := logger.FromContext(c)

	addresses, err := h.addresses.GetAll(c.Request().Context())
	if err != nil {
		log.Error("Failed to query addresses", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve addresses"})
	}
	if len(addresses) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No addresses found"})
	}
	return c.JSON(http.StatusOK, dto.AddressesToDto(addresses))
}

// GetAddressesByCity handles GET /api/address/cityAddress/:city
func (h *AddressHandler) GetAddressesByCity(c echo.Context) error {
	log := logger.FromContext(c)
	city := c.Param("city")

	addresses, err := h.addresses.GetAddressesByCity(c.Request().Context(), city)
	if err != nil {
		log.Error("Failed to query addresses by city", zap.String("city", city), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve addresses"})
	}
	if len(addresses) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No addresses found in " + city})
	}
	return c.JSON(http.StatusOK, dto.AddressesToDto(addresses))
}

// GetPropertiesByCity handles GET /api/address/cityProperty/:city
func (h *AddressHandler) GetPropertiesByCity(c echo.Context) error {
	properties, err := h.addresses.GetPropertiesByCity(c.Request().Context(), c.Param("city"))
	return respondList(c, properties, err)
}

// GetPropertiesByStreet handles GET /api/address/streetProperty/:streetNumber/:streetName
func (h *AddressHandler) GetPropertiesByStreet(c echo.Context) error {
	properties, err := h.addresses.GetPropertiesByStreet(c.Request().Context(), c.Param("streetNumber"), c.Param("streetName"))
	return respondList(c, properties, err)
}

// GetPropertiesByPostalCode handles GET /api/address/postalCodeProperty/:postalCode
func (h *AddressHandler) GetPropertiesByPostalCode(c echo.Context) error {
	properties, err := h.addresses.GetPropertiesByPostalCode(c.Request().Context(), c.Param("postalCode"))
	return respondList(c, properties, err)
}

// Add handles POST /api/address/:mls/address. Fails with 409 when the
// property already carries an address.
func (h *AddressHandler) Add(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	var req dto.AddressDto
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid address request", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Address validation failed", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.addresses.Add(c.Request().Context(), mls, dto.AddressFromDto(req)); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " not found"})
		case errors.Is(err, repository.ErrAlreadyExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Property with MLS " + mls + " already has an address"})
		}
		log.Error("Failed to add address", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while adding the address"})
	}

	log.Info("Address added", zap.String("mls", mls))
	return c.JSON(http.StatusOK, echo.Map{"message": "Address added to property " + mls})
}

// Update handles PUT /api/address/:mls/updateAddress, replacing the address
// wholesale. Fails with 404 when the property has no address yet.
func (h *AddressHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	var req dto.AddressDto
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid address request", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Address validation failed", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.addresses.Update(c.Request().Context(), mls, dto.AddressFromDto(req)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " has no address to update"})
		}
		log.Error("Failed to update address", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while updating the address"})
	}

	log.Info("Address updated", zap.String("mls", mls))
	return c.JSON(http.StatusOK, echo.Map{"message": "Address of property " + mls + " updated"})
}

// Patch handles PATCH /api/address/:mls/updateAddress, applying a JSON-Patch
// document to the existing address. A property without an address cannot be
// patched.
func (h *AddressHandler) Patch(c echo.Context) error {
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
		log.Error("Failed to fetch property for address patch", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch property"})
	}
	if property.Address == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No address available to update"})
	}
	current := *property.Address

	target := dto.AddressToUpdateDto(current)
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

	var patched dto.AddressUpdateDto
	if err := json.Unmarshal(patchedJSON, &patched); err != nil {
		log.Warn("Patched document does not match the address shape", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Patched document is invalid"})
	}

	dto.ApplyAddressUpdate(&current, patched)
	if err := h.addresses.Update(c.Request().Context(), mls, current); err != nil {
		log.Error("Failed to persist patched address", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while updating the address"})
	}

	log.Info("Address patched", zap.String("mls", mls))
	return c.JSON(http.StatusOK, echo.Map{"message": "Address of property " + mls + " updated"})
}

// Delete handles DELETE /api/address/:mls/deleteAddress. Deleting an absent
// address is not an error; the property just ends up without one either way.
func (h *AddressHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	mls := c.Param("mls")

	if err := h.addresses.Delete(c.Request().Context(), mls); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Property with MLS " + mls + " not found"})
		}
		log.Error("Failed to delete address", zap.String("mls", mls), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while deleting the address"})
	}

	log.Info("Address deleted", zap.String("mls", mls))
	return c.JSON(http.StatusOK, echo.Map{"message": "Address removed from property " + mls})
}
