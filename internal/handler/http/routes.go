// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/api/version", h.getVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/sync", func(r chi.Router) {
			r.Get("/state", h.getState)

			r.Put("/tenant", h.switchTenant)
			r.Delete("/tenant", h.signOut)
			r.Delete("/tenants/{familyID}", h.forgetFamily)

			r.Post("/initialize", h.initialize)
			r.Post("/permission", h.requestPermission)
			r.Put("/file", h.selectSyncFile)
			r.Delete("/file", h.disconnect)

			r.Get("/conflicts", h.checkForConflicts)
			r.Post("/save", h.syncNow)
			r.Post("/load", h.loadFromFile)
			r.Post("/open", h.loadFromNewFile)
			r.Post("/decrypt", h.decryptPendingFile)

			r.Put("/encryption", h.enableEncryption)
			r.Delete("/encryption", h.disableEncryption)
			r.Put("/password", h.setSessionPassword)
			r.Delete("/password", h.clearSessionPassword)
			r.Put("/auto-sync", h.setAutoSync)

			r.Get("/export", h.manualExport)
			r.Post("/import", h.manualImport)
		})

		r.Route("/api/ledger", func(r chi.Router) {
			r.Get("/members", h.listMembers)
			r.Post("/members", h.addMember)
			r.Get("/accounts", h.listAccounts)
			r.Post("/accounts", h.addAccount)
			r.Get("/accounts/{accountID}/balance", h.getBalance)
			r.Get("/accounts/{accountID}/transactions", h.listTransactions)
			r.Post("/transactions", h.addTransaction)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
