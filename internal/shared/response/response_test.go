package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"saral-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, target string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestPaged(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name      string
		target    string
		want      []int
		wantPages int
	}{
		{name: "default size", target: "/x", want: []int{1, 2}, wantPages: 3},
		{name: "last page", target: "/x?page=3&page_size=2", want: []int{5}, wantPages: 3},
		{name: "past the end", target: "/x?page=9&page_size=2", want: []int{}, wantPages: 3},
		{name: "bad values fall back", target: "/x?page=-1&page_size=abc", want: []int{1, 2}, wantPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, tt.target, func(c *gin.Context) { response.Paged(c, items, 2) })

			var body struct {
				Ok   bool  `json:"ok"`
				Data []int `json:"data"`
				Meta response.PaginationMeta
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.True(t, body.Ok)
			assert.Equal(t, tt.want, body.Data)
			assert.Equal(t, int64(5), body.Meta.Total)
			assert.Equal(t, tt.wantPages, body.Meta.TotalPages)
		})
	}
}

func TestMethod(t *testing.T) {
	w := serve(t, "/x", func(c *gin.Context) { response.Method(c, map[string]int{"saved_count": 3}) })

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":{"saved_count":3}}`, w.Body.String())
}

func TestAttachment(t *testing.T) {
	w := serve(t, "/x", func(c *gin.Context) {
		response.Attachment(c, "application/pdf", "payslips.pdf", true, []byte("%PDF"))
	})

	assert.Equal(t, `inline; filename="payslips.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", w.Body.String())
}

func TestError(t *testing.T) {
	w := serve(t, "/x", func(c *gin.Context) {
		response.Error(c, http.StatusConflict, "CONFLICT", "Salary Slip already exists for this period.", nil)
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":{"code":"CONFLICT","message":"Salary Slip already exists for this period.","details":null}}`, w.Body.String())
}
