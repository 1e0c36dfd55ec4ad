package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPageBounds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		query     string
		n         int
		wantStart int
		wantEnd   int
		wantPages int
	}{
		{name: "defaults", query: "", n: 25, wantStart: 0, wantEnd: 10, wantPages: 3},
		{name: "second page", query: "?page=2&page_size=10", n: 25, wantStart: 10, wantEnd: 20, wantPages: 3},
		{name: "past the end", query: "?page=9&page_size=10", n: 25, wantStart: 25, wantEnd: 25, wantPages: 3},
		{name: "invalid values", query: "?page=-1&page_size=0", n: 3, wantStart: 0, wantEnd: 3, wantPages: 1},
		{name: "size capped", query: "?page_size=500", n: 250, wantStart: 0, wantEnd: 100, wantPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)

			start, end, meta := PageBounds(c, tt.n)

			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, int64(tt.n), meta.Total)
		})
	}
}

func TestError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, http.StatusConflict, "CONFLICT", "swap already pending", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":{"code":"CONFLICT","message":"swap already pending"}}`, w.Body.String())
}
