package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"aavkar_pos/internal/backend"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestUpstreamStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&backend.Error{Status: http.StatusBadRequest, Message: "Out of stock"}, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", &backend.Error{Status: http.StatusNotFound}), http.StatusNotFound},
		{&backend.Error{Status: http.StatusInternalServerError}, http.StatusBadGateway},
		{errors.New("connection refused"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, upstreamStatus(tc.err), tc.err.Error())
	}
}

func TestFailUsesBackendMessage(t *testing.T) {
	h := New(Deps{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.fail(c, &backend.Error{Status: http.StatusConflict, Message: "Order already shipped"}, "fallback")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error": "Order already shipped"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h.fail(c, errors.New("dial tcp: refused"), "could not load orders")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error": "could not load orders"}`, w.Body.String())
}

func TestQueryHelpers(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=3&limit=-1&pos=yes&isPremium=false", nil)

	assert.Equal(t, 3, queryInt(c, "page", 1))
	assert.Equal(t, 10, queryInt(c, "limit", 10))
	assert.Equal(t, 7, queryInt(c, "missing", 7))

	if b := queryBool(c, "isPremium"); assert.NotNil(t, b) {
		assert.False(t, *b)
	}
	assert.Nil(t, queryBool(c, "pos"))
	assert.Nil(t, queryBool(c, "isPopular"))
}
