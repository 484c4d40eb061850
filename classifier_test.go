package client

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		kind       ErrorKind
		message    string
		apiMessage string
		resourceID string
	}{
		{"bad request", 400, `{"message":"Invalid input"}`, KindValidation, "Validation error", "Invalid input", ""},
		{"unauthorized", 401, `{"message":"bad key"}`, KindAuth, "Authentication/authorization failed", "bad key", ""},
		{"forbidden", 403, ``, KindAuth, "Authentication/authorization failed", noErrorInformation, ""},
		{"not found with id", 404, `{"id":"123","message":"User not found"}`, KindNotFound, "Resource not found", "User not found", "123"},
		{"not found numeric id", 404, `{"id":42}`, KindNotFound, "Resource not found", noErrorInformation, "42"},
		{"not found without id", 404, `{"message":"gone"}`, KindNotFound, "Resource not found", "gone", unknownResourceID},
		{"not found without body", 404, ``, KindNotFound, "Resource not found", noErrorInformation, unknownResourceID},
		{"internal error", 500, `{"message":"boom"}`, KindServer, "Server error: 500 Internal Server Error", "boom", ""},
		{"bad gateway", 502, `<html>oops</html>`, KindServer, "Server error: 502 Bad Gateway", noErrorInformation, ""},
		{"unknown 5xx", 599, ``, KindServer, "Server error: 599", noErrorInformation, ""},
		{"conflict", 409, `{"message":"duplicate"}`, KindGeneric, "Unexpected API error", "duplicate", ""},
		{"too many requests", 429, `[]`, KindGeneric, "Unexpected API error", noErrorInformation, ""},
		{"error field fallback", 400, `{"error":"phone is required"}`, KindValidation, "Validation error", "phone is required", ""},
		{"message wins over error", 400, `{"message":"first","error":"second"}`, KindValidation, "Validation error", "first", ""},
		{"id ignored outside 404", 400, `{"id":"7","message":"bad"}`, KindValidation, "Validation error", "bad", ""},
		{"non-string message", 400, `{"message":{"nested":true}}`, KindValidation, "Validation error", noErrorInformation, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := classify(tt.status, tt.body)

			if err.Kind != tt.kind {
				t.Errorf("expected kind=%s, got %s", tt.kind, err.Kind)
			}

			if err.StatusCode != tt.status {
				t.Errorf("expected status=%d, got %d", tt.status, err.StatusCode)
			}

			if err.Message != tt.message {
				t.Errorf("expected message=%q, got %q", tt.message, err.Message)
			}

			if err.APIMessage != tt.apiMessage {
				t.Errorf("expected apiMessage=%q, got %q", tt.apiMessage, err.APIMessage)
			}

			if err.ResourceID != tt.resourceID {
				t.Errorf("expected resourceID=%q, got %q", tt.resourceID, err.ResourceID)
			}

			if err.ResponseBody != tt.body {
				t.Errorf("expected body=%q, got %q", tt.body, err.ResponseBody)
			}

			if err.Err != nil {
				t.Errorf("expected no cause, got %v", err.Err)
			}
		})
	}
}

func TestParseErrorBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want errorBody
		ok   bool
	}{
		{"empty", "", errorBody{}, false},
		{"whitespace", "  \n", errorBody{}, false},
		{"malformed", `{"message":`, errorBody{}, false},
		{"array", `["message"]`, errorBody{}, false},
		{"no known fields", `{"detail":"x"}`, errorBody{}, false},
		{"message only", `{"message":"m"}`, errorBody{message: "m"}, true},
		{"id only", `{"id":"abc"}`, errorBody{id: "abc"}, true},
		{"both", `{"id":"abc","message":"m"}`, errorBody{message: "m", id: "abc"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parseErrorBody(tt.raw)

			if ok != tt.ok {
				t.Errorf("expected ok=%v, got %v", tt.ok, ok)
			}

			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
