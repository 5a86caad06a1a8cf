// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks resource records against the business rules of
// tours, users, reviews and bookings before they reach storage.
//
// Broken rules are reported together as [ValidationErrors], whose message
// lists every failure in rule order. Passing field names to Validate limits
// the check to those fields, which is how partial updates are validated.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
