package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestRequestIDIsGeneratedAndEchoed(t *testing.T) {
	m := New(quietLogger())
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(RequestIDKey), 26)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDKey, "abc")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Header.Get(RequestIDKey))
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	m := New(quietLogger(), WithRateLimit(0.001, 2))
	app := fiber.New()
	app.Post("/", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	var codes []int
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	m := New(quietLogger())
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "unknown", string(body))
}

func TestSanitizeRequestBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "non json", body: "hello", want: "[non-JSON body]"},
		{name: "masks secrets", body: `{"message":"hi","token":"t"}`, want: `{"message":"hi","token":"[SECRET]"}`},
		{
			name: "shortens long messages",
			body: `{"message":"` + strings.Repeat("a", maxLoggedMessageRunes+10) + `"}`,
			want: `{"message":"` + strings.Repeat("a", maxLoggedMessageRunes) + `..."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeRequestBody([]byte(tt.body)))
		})
	}
}
