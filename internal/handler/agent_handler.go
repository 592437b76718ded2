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
	"propertyhub-api/prometheus"
)

// AgentHandler serves the /api/agent surface. Agent references on properties
// are weak: creating, updating or deleting an agent never touches properties.
type AgentHandler struct {
	agents     repository.AgentRepository
	properties repository.PropertyRepository
}

func NewAgentHandler(agents repository.AgentRepository, properties repository.PropertyRepository) *AgentHandler {
	return &AgentHandler{agents: agents, properties: properties}
}

// List handles GET /api/agent
func (h *AgentHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	agents, err := h.agents.GetAll(c.Request().Context())
	if err != nil {
		log.Error("Failed to query agents", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve agents"})
	}
	if len(agents) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No agents found"})
	}
	return c.JSON(http.StatusOK, dto.AgentsToDto(agents))
}

// Get handles GET /api/agent/:registrationNumber
func (h *AgentHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	registrationNumber := c.Param("registrationNumber")

	agent, err := h.agents.GetByRegistrationNumber(c.Request().Context(), registrationNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Agent with registration number " + registrationNumber + " not found"})
		}
		log.Error("Failed to fetch agent", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch agent"})
	}
	return c.JSON(http.StatusOK, dto.AgentToDto(*agent))
}

// GetProperties handles GET /api/agent/:registrationNumber/properties and
// lists the properties carrying this agent's registration number.
func (h *AgentHandler) GetProperties(c echo.Context) error {
	registrationNumber := c.Param("registrationNumber")
	properties, err := h.properties.GetByAgent(c.Request().Context(), registrationNumber)
	return respondList(c, properties, err)
}

// Create handles POST /api/agent
func (h *AgentHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req dto.AgentCreateDto
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid agent creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Agent creation validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	agent := dto.AgentFromCreateDto(req)
	if err := h.agents.Create(c.Request().Context(), agent); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			log.Warn("Agent already exists", zap.String("registration_number", req.RegistrationNumber))
			return c.JSON(http.StatusConflict, echo.Map{"error": "Agent with registration number " + req.RegistrationNumber + " already exists"})
		}
		log.Error("Failed to create agent", zap.String("registration_number", req.RegistrationNumber), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while creating the agent"})
	}

	prometheus.RecordAgentOperation("create")
	log.Info("Agent created", zap.String("registration_number", agent.RegistrationNumber))
	return c.JSON(http.StatusCreated, dto.AgentToDto(*agent))
}

// Update handles PUT /api/agent/:registrationNumber with full-replacement
// semantics; the registration number itself is immutable.
func (h *AgentHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	registrationNumber := c.Param("registrationNumber")

	var req dto.AgentUpdateDto
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid agent update request", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Agent update validation failed", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	agent, err := h.agents.GetByRegistrationNumber(c.Request().Context(), registrationNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Agent with registration number " + registrationNumber + " not found"})
		}
		log.Error("Failed to fetch agent for update", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch agent"})
	}

	dto.OverwriteAgent(agent, req)
	if err := h.agents.Update(c.Request().Context(), agent); err != nil {
		log.Error("Failed to update agent", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while updating the agent"})
	}

	prometheus.RecordAgentOperation("update")
	log.Info("Agent updated", zap.String("registration_number", registrationNumber))
	return c.JSON(http.StatusOK, echo.Map{"message": "Agent updated successfully"})
}

// Patch handles PATCH /api/agent/:registrationNumber with JSON-Patch
// semantics over the fully populated update shape.
func (h *AgentHandler) Patch(c echo.Context) error {
	log := logger.FromContext(c)
	registrationNumber := c.Param("registrationNumber")

	body, err := io.ReadAll(c.Request().Body)
	if err != nil || len(body) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Patch document cannot be empty"})
	}
	patch, err := jsonpatch.DecodePatch(body)
	if err != nil {
		log.Warn("Invalid patch document", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid JSON-Patch document"})
	}

	agent, err := h.agents.GetByRegistrationNumber(c.Request().Context(), registrationNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Agent with registration number " + registrationNumber + " not found"})
		}
		log.Error("Failed to fetch agent for patch", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch agent"})
	}

	target := dto.AgentToUpdateDto(*agent)
	targetJSON, err := json.Marshal(target)
	if err != nil {
		log.Error("Failed to marshal patch target", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to apply patch"})
	}
	patchedJSON, err := patch.Apply(targetJSON)
	if err != nil {
		log.Warn("Patch application failed", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed to apply patch: " + err.Error()})
	}

	var patched dto.AgentUpdateDto
	if err := json.Unmarshal(patchedJSON, &patched); err != nil {
		log.Warn("Patched document does not match the update shape", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Patched document is invalid"})
	}
	if err := c.Validate(&patched); err != nil {
		log.Warn("Patched document failed validation", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	dto.MergeAgent(agent, patched)
	if err := h.agents.Update(c.Request().Context(), agent); err != nil {
		log.Error("Failed to persist patched agent", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while updating the agent"})
	}

	prometheus.RecordAgentOperation("patch")
	log.Info("Agent patched", zap.String("registration_number", registrationNumber))
	return c.JSON(http.StatusOK, echo.Map{"message": "Agent updated successfully"})
}

// Delete handles DELETE /api/agent/:registrationNumber. Properties keep their
// dangling registration number.
func (h *AgentHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	registrationNumber := c.Param("registrationNumber")

	if err := h.agents.Delete(c.Request().Context(), registrationNumber); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Agent with registration number " + registrationNumber + " not found"})
		}
		log.Error("Failed to delete agent", zap.String("registration_number", registrationNumber), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while deleting the agent"})
	}

	prometheus.RecordAgentOperation("delete")
	log.Info("Agent deleted", zap.String("registration_number", registrationNumber))
	return c.JSON(http.StatusOK, echo.Map{"message": "Agent deleted successfully"})
}
