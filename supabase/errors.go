// errors.go - Platform error decoding shared by the table and auth clients

package supabase

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx response from the platform. Message holds whatever
// human-readable text the platform returned, suitable for inline display.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform error (status %d)", e.Status)
	}
	return e.Message
}

// checkStatus turns a failed response into an *APIError. The two platform
// services disagree on the error field name, so all known ones are tried.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(body, &payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Msg
	}
	if msg == "" {
		msg = payload.ErrorDescription
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// IsConflict reports whether err is the platform rejecting a duplicate row,
// e.g. signing up an email that already has an account.
func IsConflict(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && (apiErr.Status == http.StatusConflict || apiErr.Status == http.StatusUnprocessableEntity)
}
