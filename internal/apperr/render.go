package apperr

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/labstack/echo/v4"
)

// envelope is the uniform error response shape. Every failure, whatever
// its origin, is rendered through it so clients handle errors one way.
type envelope struct {
	Error body `json:"error"`
}

type body struct {
	Message    string   `json:"message"`
	Code       string   `json:"code"`
	StatusCode int      `json:"statusCode"`
	Details    []string `json:"details,omitempty"`
	Timestamp  string   `json:"timestamp"`
	Path       string   `json:"path"`
	Method     string   `json:"method"`
	Stack      string   `json:"stack,omitempty"` // non-production only
}

func newEnvelope(status int, code, message string, details []string, stack, path, method string) envelope {
	return envelope{Error: body{
		Message:    message,
		Code:       code,
		StatusCode: status,
		Details:    details,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       path,
		Method:     method,
		Stack:      stack,
	}}
}

// HTTPErrorHandler returns the central Echo error handler. It is the
// single point where typed errors, Echo routing errors and anything
// unexpected become the JSON envelope. Stack traces are attached only
// when env is not "prod".
func HTTPErrorHandler(env string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		code := CodeInternal
		message := "internal server error"
		var details []string
		var stack string

		switch e := err.(type) {
		case *Error:
			status = e.Status
			code = e.Code
			message = e.Message
			details = e.Details
			if e.Err != nil {
				// Underlying cause is server-side information only.
				log.Printf("%s %s: %s: %v", c.Request().Method, c.Request().URL.Path, code, e.Err)
			}
		case *echo.HTTPError:
			// Echo raises these for unmatched routes and bad methods.
			status = e.Code
			switch status {
			case http.StatusNotFound:
				code = CodeRouteNotFound
				message = "route not found"
			case http.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
				message = "method not allowed"
			default:
				if s, ok := e.Message.(string); ok {
					message = s
				}
			}
		default:
			log.Printf("%s %s: unhandled error: %v", c.Request().Method, c.Request().URL.Path, err)
			if env != "prod" {
				stack = string(debug.Stack())
			}
		}

		resp := newEnvelope(status, code, message, details, stack, c.Request().URL.Path, c.Request().Method)

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}

// Write renders e as the JSON envelope directly onto w, bypassing Echo's
// response plumbing. The timeout middleware uses it to commit the
// envelope on the live connection after an abandoned handler has been
// cut off from it.
func Write(w http.ResponseWriter, e *Error, method, path string) {
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(newEnvelope(e.Status, e.Code, e.Message, e.Details, "", path, method))
}
