// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks sync protocol requests before they reach
// storage. A malformed push batch is rejected whole, so nothing of it is
// written.
//
// Validate accepts optional field names to restrict validation to a subset
// of fields; without them every rule of the type is applied.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
