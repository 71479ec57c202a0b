// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/internal/utils"
)

// auth requires the configured bearer token on every request. Without a
// configured token the API is open, which is only acceptable while it
// listens on a loopback address.
//
// Requests are rejected with 401 when the "Authorization" header is
// missing ([ErrEmptyAuthorizationHeader]), is not a bearer token, or
// carries a different token ([ErrInvalidToken]).
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.token == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			h.writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		token, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidToken, err)
			log.Err(err).Send()
			h.writeError(w, r, err)
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) != 1 {
			log.Err(ErrInvalidToken).Send()
			h.writeError(w, r, ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
