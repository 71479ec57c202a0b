// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-family-sync/internal/utils"
	"github.com/MKhiriev/go-family-sync/models"
)

type memberRequest struct {
	Name string `json:"name"`
}

type accountRequest struct {
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

type transactionRequest struct {
	AccountID   string          `json:"account_id"`
	MemberID    string          `json:"member_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"`
}

type balanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.ledger.Members()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_, _ = utils.WriteJSON(w, members, http.StatusOK)
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	member, err := h.ledger.AddMember(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_, _ = utils.WriteJSON(w, member, http.StatusCreated)
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.ledger.Accounts()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_, _ = utils.WriteJSON(w, accounts, http.StatusOK)
}

func (h *Handler) addAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	account, err := h.ledger.AddAccount(r.Context(), req.Name, req.Currency, req.OpeningBalance)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_, _ = utils.WriteJSON(w, account, http.StatusCreated)
}

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	balance, err := h.ledger.Balance(accountID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_, _ = utils.WriteJSON(w, balanceResponse{AccountID: accountID, Balance: balance}, http.StatusOK)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.ledger.Transactions(chi.URLParam(r, "accountID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_, _ = utils.WriteJSON(w, txs, http.StatusOK)
}

func (h *Handler) addTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	tx := models.Transaction{
		AccountID:   req.AccountID,
		MemberID:    req.MemberID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != nil {
		tx.Date = req.Date.UTC()
	}

	created, err := h.ledger.AddTransaction(r.Context(), tx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	_, _ = utils.WriteJSON(w, created, http.StatusCreated)
}
