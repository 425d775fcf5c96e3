package gbp

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GraphQLError is a single entry of a GraphQL response's errors array.
type GraphQLError struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// APIError is returned when the server's response carries a non-empty
// errors array. GraphQL allows partial success, so Data holds whatever
// data accompanied the errors, unmodified.
type APIError struct {
	Errors []GraphQLError
	Data   json.RawMessage
}

func (e *APIError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ge := range e.Errors {
		msgs[i] = ge.Message
	}
	return "api error: " + strings.Join(msgs, "; ")
}

// TransportError is returned when the HTTP layer fails with a non-2xx
// status. Connection-level failures surface as the transport's own error,
// wrapped but uninterpreted.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, body)
}
