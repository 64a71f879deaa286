// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ChangeRequest is the body of POST /api/sync/cambios.
//
// LastSync is the fallback watermark for every requested type. Watermarks
// holds per-type cursors and takes precedence over LastSync when present.
// An empty RequestedTypes list means "all types".
type ChangeRequest struct {
	LastSync       time.Time                `json:"lastSync"`
	TerminalID     string                   `json:"terminalId"`
	RequestedTypes []EntityType             `json:"requestedTypes,omitempty"`
	Watermarks     map[EntityType]time.Time `json:"watermarks,omitempty"`
}

// WatermarkFor returns the cursor the server must use for entity type t.
func (r ChangeRequest) WatermarkFor(t EntityType) time.Time {
	if w, ok := r.Watermarks[t]; ok {
		return w
	}
	return r.LastSync
}

// Types returns the known entity types requested by the terminal. Unknown
// names are dropped; an empty request yields [AllEntityTypes].
func (r ChangeRequest) Types() []EntityType {
	if len(r.RequestedTypes) == 0 {
		return AllEntityTypes
	}

	types := make([]EntityType, 0, len(r.RequestedTypes))
	seen := make(map[EntityType]struct{}, len(r.RequestedTypes))
	for _, t := range r.RequestedTypes {
		if !t.Known() {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	return types
}

// ChangeBatch is the pull response. Collections are ordered ascending by
// LastUpdated. HasMore is set when at least one collection was truncated
// by the server page limit and the terminal should pull again.
type ChangeBatch struct {
	Result

	GeneratedAt time.Time     `json:"generatedAt"`
	ServerID    string        `json:"serverId"`
	Products    []Product     `json:"products"`
	Services    []Service     `json:"services"`
	Promotions  []Promotion   `json:"promotions"`
	Configs     []ConfigEntry `json:"configs"`
	HasMore     bool          `json:"hasMore"`
}

// Len returns the total number of rows carried by the batch.
func (b ChangeBatch) Len() int {
	return len(b.Products) + len(b.Services) + len(b.Promotions) + len(b.Configs)
}
