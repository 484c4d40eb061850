package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type errorBody struct {
	message string
	id      string
}

// parseErrorBody extracts the message and id fields from an error response.
// It returns false when the body is empty, not a JSON object, or carries
// neither field.
func parseErrorBody(raw string) (errorBody, bool) {
	if strings.TrimSpace(raw) == "" {
		return errorBody{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return errorBody{}, false
	}

	body := errorBody{
		message: stringField(fields, "message"),
		id:      stringField(fields, "id"),
	}

	// Older API revisions report the message under "error".
	if body.message == "" {
		body.message = stringField(fields, "error")
	}

	if body.message == "" && body.id == "" {
		return errorBody{}, false
	}

	return body, true
}

// stringField returns the named field as a string. Numeric ids are kept in
// their JSON text form; other non-string values are ignored.
func stringField(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}

// classify maps a non-success response to its error variant. It never fails:
// an empty or unparsable body still yields a variant whose APIMessage is the
// "no additional error information" sentinel.
func classify(statusCode int, rawBody string) *APIError {
	body, ok := parseErrorBody(rawBody)

	apiMessage := noErrorInformation
	if ok && body.message != "" {
		apiMessage = body.message
	}

	e := &APIError{
		StatusCode:   statusCode,
		ResponseBody: rawBody,
		APIMessage:   apiMessage,
	}

	switch {
	case statusCode == http.StatusBadRequest:
		e.Kind = KindValidation
		e.Message = "Validation error"
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		e.Kind = KindAuth
		e.Message = "Authentication/authorization failed"
	case statusCode == http.StatusNotFound:
		e.Kind = KindNotFound
		e.Message = "Resource not found"
		e.ResourceID = body.id
		if e.ResourceID == "" {
			e.ResourceID = unknownResourceID
		}
	case statusCode >= 500 && statusCode <= 599:
		e.Kind = KindServer
		e.Message = fmt.Sprintf("Server error: %d", statusCode)
		if reason := http.StatusText(statusCode); reason != "" {
			e.Message += " " + reason
		}
	default:
		e.Kind = KindGeneric
		e.Message = "Unexpected API error"
	}

	return e
}
