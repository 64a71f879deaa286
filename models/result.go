// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Result is the envelope shared by every sync API response.
// Error responses consist of the bare envelope with Success set to false.
type Result struct {
	// Success reports whether the request was handled successfully.
	Success bool `json:"success"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message,omitempty"`
}

// OK builds a successful envelope with the given message.
func OK(message string) Result {
	return Result{Success: true, Message: message}
}

// Fail builds a failed envelope with the given message.
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}
