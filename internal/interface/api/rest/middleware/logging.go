package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-users-api/internal/infrastructure/metrics"
)

const (
	maxLogBodySize = 1 << 12 // 4 KB
	masked         = "***"
)

const secretKey = "senha"

// pairRe matches a key with a string value, up to the end of the value or
// to the end of input when the body was cut at maxLogBodySize.
var pairRe = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"(\s*:\s*)"(?:[^"\\]|\\.)*"?`)

// isSecretKey decodes a raw JSON key and compares it the way
// encoding/json matches struct fields.
func isSecretKey(raw string) bool {
	var key string
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &key); err != nil {
		return false
	}
	return strings.EqualFold(key, secretKey)
}

func maskBody(body []byte) string {
	return pairRe.ReplaceAllStringFunc(string(body), func(pair string) string {
		m := pairRe.FindStringSubmatch(pair)
		if !isSecretKey(m[1]) {
			return pair
		}
		return `"` + m[1] + `"` + m[2] + `"` + masked + `"`
	})
}

func RequestLogGin(logger *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if c.Request.Body != nil {
			buf, _ := io.ReadAll(io.LimitReader(c.Request.Body, maxLogBodySize))
			// put the consumed prefix back in front of the unread remainder
			c.Request.Body = struct {
				io.Reader
				io.Closer
			}{io.MultiReader(bytes.NewReader(buf), c.Request.Body), c.Request.Body}
			body = maskBody(buf)
		}

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if m != nil {
			m.Counter.WithLabelValues("app_requests_total").Inc()
			m.RequestDuration.
				WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
		}

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("url", route),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", GetRequestID(c)),
		)
	}
}
