package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every role-gated route must reject the other role with an AccessDenied
// notice and a redirect hint, never a hard failure.
func TestRoleGateBlocksConsumersFromFarmerRoutes(t *testing.T) {
	server := setupServer(t)
	consumerToken := registerConsumer(t, server, "alice", 30)

	farmerRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/farmer/dashboard"},
		{http.MethodPost, "/farmer/products"},
		{http.MethodGet, "/farmer/advisories"},
		{http.MethodPost, "/farmer/advisories"},
		{http.MethodGet, "/farmer/rewards"},
		{http.MethodGet, "/farmer/price-prediction"},
		{http.MethodPatch, "/farmer/orders/1/status"},
	}

	for _, route := range farmerRoutes {
		rec := doJSON(t, server, route.method, route.path, consumerToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code, "route %s %s", route.method, route.path)

		body := decodeBody(t, rec)
		assert.Equal(t, "Access denied. You are not registered as a farmer.", body["message"])
		assert.Equal(t, "/", body["redirect"])
	}
}

func TestRoleGateBlocksFarmersFromConsumerRoutes(t *testing.T) {
	server := setupServer(t)
	farmerToken := registerFarmer(t, server, "bob", "Pune")

	consumerRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/consumer/dashboard"},
		{http.MethodGet, "/consumer/products"},
		{http.MethodGet, "/consumer/cart"},
		{http.MethodPost, "/consumer/cart"},
		{http.MethodPost, "/consumer/checkout"},
		{http.MethodGet, "/consumer/orders"},
		{http.MethodGet, "/consumer/adoptions"},
		{http.MethodGet, "/consumer/rewards"},
		{http.MethodGet, "/consumer/health-advisor"},
		{http.MethodGet, "/consumer/chatbot"},
	}

	for _, route := range consumerRoutes {
		rec := doJSON(t, server, route.method, route.path, farmerToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code, "route %s %s", route.method, route.path)

		body := decodeBody(t, rec)
		assert.Equal(t, "Access denied. You are not registered as a consumer.", body["message"])
		assert.Equal(t, "/", body["redirect"])
	}
}

func TestRoleGateRequiresAuthentication(t *testing.T) {
	server := setupServer(t)

	rec := doJSON(t, server, http.MethodGet, "/consumer/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, server, http.MethodGet, "/farmer/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
