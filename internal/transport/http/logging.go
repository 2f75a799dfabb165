package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048

	redacted = "redacted"
	binary   = "binary"
)

// Keys whose values never reach the log. Matching is on the lowercased key.
var sensitiveKeys = []string{"password", "token", "authorization", "secret"}

type requestLogLine struct {
	Time      string `json:"time"`
	SubjectID *int64 `json:"subject_id,omitempty"`
	Expired   bool   `json:"session_expired,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
	Request   struct {
		Method string `json:"method"`
		URI    string `json:"uri"`
		Body   any    `json:"body,omitempty"`
	} `json:"request"`
	Response struct {
		Status int    `json:"status"`
		Body   any    `json:"body,omitempty"`
		Error  string `json:"error,omitempty"`
	} `json:"response"`
}

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			line := requestLogLine{
				Time:      v.StartTime.UTC().Format(time.RFC3339),
				LatencyMS: v.Latency.Milliseconds(),
			}
			if id, ok := CurrentSubject(c); ok {
				line.SubjectID = &id
			}
			if verification, ok := CurrentVerification(c); ok {
				line.Expired = verification.Expired
			}
			line.Request.Method = v.Method
			line.Request.URI = v.URI
			line.Request.Body = c.Get(requestBodyLogKey)
			line.Response.Status = v.Status
			line.Response.Body = c.Get(responseBodyLogKey)
			if v.Error != nil {
				line.Response.Error = v.Error.Error()
			}

			buf, err := json.Marshal(line)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if summary := summarizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
		if summary := summarizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
			c.Set(responseBodyLogKey, summary)
		}
	}))
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// summarizeBody turns a request or response body into something safe to log:
// sensitive fields are redacted, files and binary payloads are replaced by a
// marker and long content is cut.
func summarizeBody(body []byte, contentType string) any {
	if len(body) == 0 {
		return nil
	}
	mediaType, params, _ := mime.ParseMediaType(strings.TrimSpace(contentType))

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		return summarizeMultipart(body, params["boundary"])
	case mediaType == echo.MIMEApplicationForm:
		if values, err := url.ParseQuery(string(body)); err == nil && len(values) > 0 {
			fields := make(map[string]any, len(values))
			for key, vals := range values {
				for _, v := range vals {
					addField(fields, key, scrubString(key, v))
				}
			}
			return capSize(fields)
		}
	case mediaType == echo.MIMEApplicationJSON || json.Valid(body):
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			return capSize(scrubJSON(data, ""))
		}
	}

	if isBinary(body) {
		return binary
	}
	text := string(body)
	if isSensitiveKey(text) {
		return redacted
	}
	return truncate(text)
}

func scrubJSON(value any, key string) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = scrubJSON(item, k)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = scrubJSON(item, key)
		}
		return out
	case string:
		return scrubString(key, v)
	default:
		if key != "" && isSensitiveKey(key) {
			return redacted
		}
		return v
	}
}

func scrubString(key, value string) string {
	if key != "" && isSensitiveKey(key) {
		return redacted
	}
	if isBinary([]byte(value)) {
		return binary
	}
	return truncate(value)
}

func summarizeMultipart(body []byte, boundary string) any {
	if boundary == "" {
		return binary
	}
	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	fields := make(map[string]any)
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return binary
		}
		name := part.FormName()
		if name == "" {
			_ = part.Close()
			continue
		}
		var value any = binary
		if part.FileName() == "" {
			if data, err := io.ReadAll(part); err == nil {
				value = scrubString(name, string(data))
			}
		}
		_ = part.Close()
		addField(fields, name, value)
	}
	if len(fields) == 0 {
		return binary
	}
	return capSize(fields)
}

// capSize replaces a summary that would exceed maxLoggedBody once encoded
// with a marker listing its top-level keys or its length.
func capSize(value any) any {
	buf, err := json.Marshal(value)
	if err != nil || len(buf) <= maxLoggedBody {
		return value
	}
	marker := map[string]any{"_truncated": true, "_bytes": len(buf)}
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		marker["_keys"] = keys
	case []any:
		marker["_items"] = len(v)
	}
	return marker
}

func isBinary(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		data = data[size:]
	}
	return false
}

func truncate(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	cut := value[:maxLoggedBody]
	for !utf8.ValidString(cut) && len(cut) > 0 {
		cut = cut[:len(cut)-1]
	}
	return cut + "...(truncated)"
}

func addField(fields map[string]any, key string, value any) {
	existing, ok := fields[key]
	if !ok {
		fields[key] = value
		return
	}
	if items, ok := existing.([]any); ok {
		fields[key] = append(items, value)
		return
	}
	fields[key] = []any{existing, value}
}
