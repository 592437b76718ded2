package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub-api/internal/dto"
	"propertyhub-api/internal/model"
	"propertyhub-api/internal/repository"
)

func agentFixture() model.Agent {
	return model.Agent{
		RegistrationNumber:   "AG-001",
		Name:                 "Dana Reyes",
		RegistrationCategory: "Broker",
		BrokerageTradeName:   "Reyes Realty",
		BrokeragePhone:       "416-555-0101",
		BrokerageEmail:       "dana@reyesrealty.ca",
		BrokerageAddress: model.Address{
			StreetNumber: "100", StreetName: "Bay St", City: "Toronto",
			Province: "ON", PostalCode: "M5H 2N2", Country: "Canada",
		},
	}
}

func newAgentEnv(t *testing.T) (*echo.Echo, *repository.MemoryAgentRepository, *repository.MemoryPropertyRepository, *AgentHandler) {
	t.Helper()
	agents := repository.NewMemoryAgentRepository()
	properties := repository.NewMemoryPropertyRepository()
	return newEcho(), agents, properties, NewAgentHandler(agents, properties)
}

func seedAgent(t *testing.T, repo repository.AgentRepository, a model.Agent) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &a))
}

func TestAgentCreateReturnsCreated(t *testing.T) {
	e, repo, _, h := newAgentEnv(t)

	body := `{
		"registrationNumber":"AG-001","name":"Dana Reyes","registrationCategory":"Broker",
		"brokerageTradeName":"Reyes Realty","brokeragePhone":"416-555-0101",
		"brokerageEmail":"dana@reyesrealty.ca",
		"brokerageAddress":{"streetNumber":"100","streetName":"Bay St","city":"Toronto","province":"ON","postalCode":"M5H 2N2","country":"Canada"}
	}`
	rec := jsonRequest(e, http.MethodPost, "/api/agent", body, nil, h.Create)
	assertStatus(t, rec, http.StatusCreated)

	var got dto.AgentDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "AG-001", got.RegistrationNumber)

	stored, err := repo.GetByRegistrationNumber(context.Background(), "AG-001")
	require.NoError(t, err)
	assert.Equal(t, "Broker", stored.RegistrationCategory)

	rec = jsonRequest(e, http.MethodPost, "/api/agent", body, nil, h.Create)
	assertStatus(t, rec, http.StatusConflict)
}

func TestAgentCreateRejectsUnknownCategory(t *testing.T) {
	e, _, _, h := newAgentEnv(t)

	body := `{
		"registrationNumber":"AG-002","name":"Sam Okafor","registrationCategory":"Landlord",
		"brokerageTradeName":"Okafor Homes","brokeragePhone":"416-555-0102",
		"brokerageEmail":"sam@okaforhomes.ca",
		"brokerageAddress":{"streetNumber":"1","streetName":"Main St","city":"Toronto","province":"ON","postalCode":"M1M 1M1","country":"Canada"}
	}`
	rec := jsonRequest(e, http.MethodPost, "/api/agent", body, nil, h.Create)
	assertStatus(t, rec, http.StatusBadRequest)
}

func TestAgentGetAndList(t *testing.T) {
	e, repo, _, h := newAgentEnv(t)

	rec := jsonRequest(e, http.MethodGet, "/api/agent", "", nil, h.List)
	assertStatus(t, rec, http.StatusNotFound)

	seedAgent(t, repo, agentFixture())

	rec = jsonRequest(e, http.MethodGet, "/api/agent", "", nil, h.List)
	assertStatus(t, rec, http.StatusOK)

	rec = jsonRequest(e, http.MethodGet, "/api/agent/:registrationNumber", "", map[string]string{"registrationNumber": "AG-001"}, h.Get)
	assertStatus(t, rec, http.StatusOK)

	rec = jsonRequest(e, http.MethodGet, "/api/agent/:registrationNumber", "", map[string]string{"registrationNumber": "AG-404"}, h.Get)
	assertStatus(t, rec, http.StatusNotFound)
}

func TestAgentProperties(t *testing.T) {
	e, agents, properties, h := newAgentEnv(t)
	seedAgent(t, agents, agentFixture())
	seedProperty(t, properties, model.Property{MLS: "C1", Type: "Condo", AgentRegistrationNumber: "AG-001"})
	seedProperty(t, properties, model.Property{MLS: "C2", Type: "Condo", AgentRegistrationNumber: "AG-002"})

	rec := jsonRequest(e, http.MethodGet, "/api/agent/:registrationNumber/properties", "", map[string]string{"registrationNumber": "AG-001"}, h.GetProperties)
	assertStatus(t, rec, http.StatusOK)
	var listed []dto.PropertyDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "C1", listed[0].MLS)
}

func TestAgentPutIsFullReplacement(t *testing.T) {
	e, repo, _, h := newAgentEnv(t)
	seedAgent(t, repo, agentFixture())

	body := `{"name":"Dana Reyes","registrationCategory":"Salesperson"}`
	rec := jsonRequest(e, http.MethodPut, "/api/agent/:registrationNumber", body, map[string]string{"registrationNumber": "AG-001"}, h.Update)
	assertStatus(t, rec, http.StatusOK)

	stored, err := repo.GetByRegistrationNumber(context.Background(), "AG-001")
	require.NoError(t, err)
	assert.Equal(t, "Salesperson", stored.RegistrationCategory)
	assert.Empty(t, stored.BrokerageTradeName, "omitted field resets on PUT")
	assert.Empty(t, stored.BrokerageEmail)
	assert.Equal(t, model.Address{}, stored.BrokerageAddress)
}

func TestAgentPatchIsSparse(t *testing.T) {
	e, repo, _, h := newAgentEnv(t)
	seedAgent(t, repo, agentFixture())

	patch := `[{"op":"replace","path":"/brokeragePhone","value":"416-555-0199"}]`
	rec := jsonRequest(e, http.MethodPatch, "/api/agent/:registrationNumber", patch, map[string]string{"registrationNumber": "AG-001"}, h.Patch)
	assertStatus(t, rec, http.StatusOK)

	stored, err := repo.GetByRegistrationNumber(context.Background(), "AG-001")
	require.NoError(t, err)
	assert.Equal(t, "416-555-0199", stored.BrokeragePhone)
	assert.Equal(t, "Reyes Realty", stored.BrokerageTradeName, "untouched field survives PATCH")
	assert.Equal(t, "Toronto", stored.BrokerageAddress.City)
}

func TestAgentDelete(t *testing.T) {
	e, repo, _, h := newAgentEnv(t)
	seedAgent(t, repo, agentFixture())

	rec := jsonRequest(e, http.MethodDelete, "/api/agent/:registrationNumber", "", map[string]string{"registrationNumber": "AG-001"}, h.Delete)
	assertStatus(t, rec, http.StatusOK)

	rec = jsonRequest(e, http.MethodDelete, "/api/agent/:registrationNumber", "", map[string]string{"registrationNumber": "AG-001"}, h.Delete)
	assertStatus(t, rec, http.StatusNotFound)
}

func TestAgentDeleteLeavesPropertiesAlone(t *testing.T) {
	e, agents, properties, h := newAgentEnv(t)
	seedAgent(t, agents, agentFixture())
	seedProperty(t, properties, model.Property{MLS: "C1", Type: "Condo", AgentRegistrationNumber: "AG-001"})

	rec := jsonRequest(e, http.MethodDelete, "/api/agent/:registrationNumber", "", map[string]string{"registrationNumber": "AG-001"}, h.Delete)
	assertStatus(t, rec, http.StatusOK)

	stored, err := properties.GetByMLS(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, "AG-001", stored.AgentRegistrationNumber, "weak reference is left dangling")
}
