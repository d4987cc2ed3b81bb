package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookstack/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	for _, value := range []string{"abc", "-1", ""} {
		t.Run(value, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: value}}

			id, ok := parseIDParam(c, "id")

			assert.False(t, ok)
			assert.Equal(t, uint(0), id)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "invalid id")
		})
	}
}

func TestParseIntQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"missing", "/", 25},
		{"valid", "/?limit=10", 10},
		{"malformed", "/?limit=ten", 25},
		{"below minimum", "/?limit=0", 1},
		{"above maximum", "/?limit=500", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", tt.query, nil)
			assert.Equal(t, tt.expected, parseIntQuery(c, "limit", 25, 1, 100))
		})
	}
}

func TestRespondServiceError(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("PUT", "/", nil)

		respondServiceError(c, validation.NewError("yearly_goal", "must be at most 1000"), "test")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `"yearly_goal":"must be at most 1000"`)
		assert.Contains(t, w.Body.String(), `"code":"validation"`)
	})

	t.Run("other error is hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("PUT", "/", nil)

		respondServiceError(c, errors.New("disk I/O error"), "test")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk")
	})
}

func TestDefaultUserMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		preset   *uint
		expected uint
	}{
		{"injects default user", nil, DefaultUserID},
		{"keeps upstream user", func() *uint { id := uint(9); return &id }(), 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			if tt.preset != nil {
				router.Use(func(c *gin.Context) { c.Set(ContextKeyUserID, *tt.preset) })
			}
			router.Use(DefaultUserMiddleware())

			var got uint
			router.GET("/", func(c *gin.Context) { got = GetUserID(c) })
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

			assert.Equal(t, tt.expected, got)
		})
	}
}
