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

func newAddressEnv(t *testing.T) (*echo.Echo, *repository.MemoryPropertyRepository, *AddressHandler) {
	t.Helper()
	properties := repository.NewMemoryPropertyRepository()
	addresses := repository.NewMemoryAddressRepository(properties)
	return newEcho(), properties, NewAddressHandler(addresses, properties)
}

const addressBody = `{"streetNumber":"9","streetName":"King St","city":"Hamilton","province":"ON","postalCode":"L8P 1A1","country":"Canada"}`

func TestAddressProjectionEndpoints(t *testing.T) {
	e, properties, h := newAddressEnv(t)
	seedProperty(t, properties, condoFixture())
	seedProperty(t, properties, model.Property{MLS: "T3", Type: "Townhouse"})

	rec := jsonRequest(e, http.MethodGet, "/api/address", "", nil, h.GetAll)
	assertStatus(t, rec, http.StatusOK)
	var addresses []dto.AddressDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &addresses))
	assert.Len(t, addresses, 1, "property without an address is skipped")

	rec = jsonRequest(e, http.MethodGet, "/api/address/cityAddress/:city", "", map[string]string{"city": "TORONTO"}, h.GetAddressesByCity)
	assertStatus(t, rec, http.StatusOK)

	rec = jsonRequest(e, http.MethodGet, "/api/address/cityProperty/:city", "", map[string]string{"city": "toronto"}, h.GetPropertiesByCity)
	assertStatus(t, rec, http.StatusOK)
	var listed []dto.PropertyDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "C1000001", listed[0].MLS)

	rec = jsonRequest(e, http.MethodGet, "/api/address/streetProperty/:streetNumber/:streetName", "", map[string]string{"streetNumber": "55", "streetName": "mercer st"}, h.GetPropertiesByStreet)
	assertStatus(t, rec, http.StatusOK)

	rec = jsonRequest(e, http.MethodGet, "/api/address/postalCodeProperty/:postalCode", "", map[string]string{"postalCode": "M5V 0W4"}, h.GetPropertiesByPostalCode)
	assertStatus(t, rec, http.StatusOK)

	rec = jsonRequest(e, http.MethodGet, "/api/address/cityProperty/:city", "", map[string]string{"city": "Vancouver"}, h.GetPropertiesByCity)
	assertStatus(t, rec, http.StatusNotFound)
}

func TestAddressAddSingleton(t *testing.T) {
	e, properties, h := newAddressEnv(t)
	seedProperty(t, properties, condoFixture())
	seedProperty(t, properties, model.Property{MLS: "T3", Type: "Townhouse"})

	// Adding on top of an existing address conflicts.
	rec := jsonRequest(e, http.MethodPost, "/api/address/:mls/address", addressBody, map[string]string{"mls": "C1000001"}, h.Add)
	assertStatus(t, rec, http.StatusConflict)

	rec = jsonRequest(e, http.MethodPost, "/api/address/:mls/address", addressBody, map[string]string{"mls": "T3"}, h.Add)
	assertStatus(t, rec, http.StatusOK)

	stored, err := properties.GetByMLS(context.Background(), "T3")
	require.NoError(t, err)
	require.NotNil(t, stored.Address)
	assert.Equal(t, "Hamilton", stored.Address.City)

	rec = jsonRequest(e, http.MethodPost, "/api/address/:mls/address", addressBody, map[string]string{"mls": "missing"}, h.Add)
	assertStatus(t, rec, http.StatusNotFound)

	// Incomplete address is a client error.
	rec = jsonRequest(e, http.MethodPost, "/api/address/:mls/address", `{"city":"Hamilton"}`, map[string]string{"mls": "T3"}, h.Add)
	assertStatus(t, rec, http.StatusBadRequest)
}

func TestAddressUpdateRequiresExisting(t *testing.T) {
	e, properties, h := newAddressEnv(t)
	seedProperty(t, properties, condoFixture())
	seedProperty(t, properties, model.Property{MLS: "T3", Type: "Townhouse"})

	rec := jsonRequest(e, http.MethodPut, "/api/address/:mls/updateAddress", addressBody, map[string]string{"mls": "T3"}, h.Update)
	assertStatus(t, rec, http.StatusNotFound)

	rec = jsonRequest(e, http.MethodPut, "/api/address/:mls/updateAddress", addressBody, map[string]string{"mls": "C1000001"}, h.Update)
	assertStatus(t, rec, http.StatusOK)

	stored, err := properties.GetByMLS(context.Background(), "C1000001")
	require.NoError(t, err)
	assert.Equal(t, "Hamilton", stored.Address.City)
	assert.Empty(t, stored.Address.Unit, "replacement drops fields the new address does not carry")
}

func TestAddressPatch(t *testing.T) {
	e, properties, h := newAddressEnv(t)
	seedProperty(t, properties, condoFixture())
	seedProperty(t, properties, model.Property{MLS: "T3", Type: "Townhouse"})

	patch := `[{"op":"replace","path":"/unit","value":"801"}]`
	rec := jsonRequest(e, http.MethodPatch, "/api/address/:mls/updateAddress", patch, map[string]string{"mls": "C1000001"}, h.Patch)
	assertStatus(t, rec, http.StatusOK)

	stored, err := properties.GetByMLS(context.Background(), "C1000001")
	require.NoError(t, err)
	assert.Equal(t, "801", stored.Address.Unit)
	assert.Equal(t, "Toronto", stored.Address.City, "untouched field survives PATCH")

	// A property without an address has nothing to patch.
	rec = jsonRequest(e, http.MethodPatch, "/api/address/:mls/updateAddress", patch, map[string]string{"mls": "T3"}, h.Patch)
	assertStatus(t, rec, http.StatusBadRequest)
}

func TestAddressDeleteIdempotent(t *testing.T) {
	e, properties, h := newAddressEnv(t)
	seedProperty(t, properties, condoFixture())

	rec := jsonRequest(e, http.MethodDelete, "/api/address/:mls/deleteAddress", "", map[string]string{"mls": "C1000001"}, h.Delete)
	assertStatus(t, rec, http.StatusOK)

	stored, err := properties.GetByMLS(context.Background(), "C1000001")
	require.NoError(t, err)
	assert.Nil(t, stored.Address)

	// Second delete still succeeds.
	rec = jsonRequest(e, http.MethodDelete, "/api/address/:mls/deleteAddress", "", map[string]string{"mls": "C1000001"}, h.Delete)
	assertStatus(t, rec, http.StatusOK)

	rec = jsonRequest(e, http.MethodDelete, "/api/address/:mls/deleteAddress", "", map[string]string{"mls": "missing"}, h.Delete)
	assertStatus(t, rec, http.StatusNotFound)
}
