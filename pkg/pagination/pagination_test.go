package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(query string) Params {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  Params
	}{
		{"defaults", "", Params{Page: 1, Limit: 20, Offset: 0}},
		{"explicit", "page=3&limit=10", Params{Page: 3, Limit: 10, Offset: 20}},
		{"negative page", "page=-1", Params{Page: 1, Limit: 20, Offset: 0}},
		{"zero limit", "limit=0", Params{Page: 1, Limit: 20, Offset: 0}},
		{"limit capped", "limit=5000", Params{Page: 1, Limit: 100, Offset: 0}},
		{"non-numeric", "page=abc&limit=xyz", Params{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, paramsFor(tc.query))
		})
	}
}
