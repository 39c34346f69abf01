package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventops-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the handlers over services with no backing store.
// Only request parsing and validation paths are exercised here; anything
// that would reach the database belongs in the store integration tests.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(
		service.NewLedgerService(nil, nil, nil),
		service.NewTicketService(nil, nil, nil),
		service.NewRegistryService(nil, nil),
		service.NewProductService(nil, nil),
		service.NewTableService(nil, nil),
		service.NewReportService(nil, nil, 500, 0),
	)

	router := gin.New()
	handler.SetupRoutes(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestMalformedJSONReturns400(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/vendas-bar", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidPathIDReturns400(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodDelete, "/api/v1/vendas-bar/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/ingressos/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMissingRequiredFieldsReturn422(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/ingressos", `{"lote":"1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "Numero")
	assert.Contains(t, body.Fields, "FormaPagamento")
}

func TestSaleQuantityBelowMinimumReturns422(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/vendas-bar",
		`{"produto_id":1,"quantidade":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "Quantidade")
}

func TestUnknownPaymentMethodReturns422(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/ingressos",
		`{"numero":"A-01","forma_pagamento":"cheque"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "forma_pagamento")
}

func TestUnknownWristbandReturns422(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/ingressos/1/check-in",
		`{"pulseira":"verde"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "pulseira")
}

func TestUnknownTicketCategoryReturns422(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/pessoas",
		`{"nome":"Ana","tipo_ingresso":"backstage"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "tipo_ingresso")
}

func TestUnknownRoleReturns422(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/colaboradores",
		`{"nome":"Joao","cargo":"dj"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "cargo")
}
