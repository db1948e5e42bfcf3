// Package pathutil provides helpers for route templates.
package pathutil
