// Package httputil provides HTTP method and status helpers used when
// assembling operations and responses.
package httputil

import (
	"net/http"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	MinStatusCode = 100 // Minimum valid HTTP status code
	MaxStatusCode = 599 // Maximum valid HTTP status code

	StatusOK                  = http.StatusOK
	StatusCreated             = http.StatusCreated
	StatusInternalServerError = http.StatusInternalServerError
)

// HTTP Method Constants, lowercase as they appear in a path item.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

var methods = map[string]bool{
	MethodGet: true, MethodPut: true, MethodPost: true, MethodDelete: true,
	MethodOptions: true, MethodHead: true, MethodPatch: true, MethodTrace: true,
}

// NormalizeMethod lowercases and trims an HTTP method name. It reports false
// for methods a path item cannot hold.
func NormalizeMethod(method string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(method))
	return m, methods[m]
}

// IsPost reports whether method is POST in any case.
func IsPost(method string) bool {
	return strings.EqualFold(strings.TrimSpace(method), MethodPost)
}

// ValidateStatusCode reports whether code is within 100-599.
func ValidateStatusCode(code int) bool {
	return code >= MinStatusCode && code <= MaxStatusCode
}

// StatusKey formats a status code as a responses map key.
func StatusKey(code int) string {
	return strconv.Itoa(code)
}

// ReasonPhrase returns the standard reason phrase for code, or "" when the
// code has none.
func ReasonPhrase(code int) string {
	return http.StatusText(code)
}
