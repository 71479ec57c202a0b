// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-family-sync/internal/utils"
	"github.com/MKhiriev/go-family-sync/models"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler. It answers
// with 405 and an Allow header listing the methods registered for the
// requested path, found by walking every route of router.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if patternMatches(route, r.URL.Path) && !slices.Contains(allowed, method) {
				allowed = append(allowed, method)
			}
			return nil
		})
		slices.Sort(allowed)

		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		utils.WriteError(w, models.SyncError{
			Kind:        "method-not-allowed",
			Message:     r.Method + " is not supported for " + r.URL.Path,
			Recoverable: true,
		}, http.StatusMethodNotAllowed)
	}
}

// patternMatches reports whether path fits a chi route pattern. A {param}
// segment matches any non-empty segment and a trailing * matches the rest.
func patternMatches(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	ss := strings.Split(strings.Trim(path, "/"), "/")

	for i, p := range ps {
		if p == "*" {
			return true
		}
		if i >= len(ss) {
			return false
		}
		switch {
		case strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}"):
			if ss[i] == "" {
				return false
			}
		case p != ss[i]:
			return false
		}
	}
	return len(ps) == len(ss)
}
