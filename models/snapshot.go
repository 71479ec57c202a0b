// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// DomainSnapshot is the complete exportable state of one family.
//
// The sync engine does not interpret the entities: each element is kept as
// raw JSON so that fields added by newer domain stores survive a save/load
// cycle untouched. Order within each collection is preserved.
type DomainSnapshot struct {
	Members               []json.RawMessage `json:"members"`
	Accounts              []json.RawMessage `json:"accounts"`
	Transactions          []json.RawMessage `json:"transactions"`
	Assets                []json.RawMessage `json:"assets"`
	Goals                 []json.RawMessage `json:"goals"`
	RecurringTransactions []json.RawMessage `json:"recurringTransactions"`
	Settings              json.RawMessage   `json:"settings,omitempty"`
}

// Len returns the total number of entities across all collections.
func (s DomainSnapshot) Len() int {
	return len(s.Members) + len(s.Accounts) + len(s.Transactions) +
		len(s.Assets) + len(s.Goals) + len(s.RecurringTransactions)
}

// Clone returns a deep copy of the snapshot.
func (s DomainSnapshot) Clone() DomainSnapshot {
	return DomainSnapshot{
		Members:               cloneRaw(s.Members),
		Accounts:              cloneRaw(s.Accounts),
		Transactions:          cloneRaw(s.Transactions),
		Assets:                cloneRaw(s.Assets),
		Goals:                 cloneRaw(s.Goals),
		RecurringTransactions: cloneRaw(s.RecurringTransactions),
		Settings:              append(json.RawMessage(nil), s.Settings...),
	}
}

func cloneRaw(in []json.RawMessage) []json.RawMessage {
	if in == nil {
		return nil
	}
	out := make([]json.RawMessage, len(in))
	for i, item := range in {
		out[i] = append(json.RawMessage(nil), item...)
	}
	return out
}
