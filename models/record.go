// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// Record is a persisted resource row whose fields are addressable by
// column name. Repositories use it to build INSERT/UPDATE statements and to
// pick scan destinations for whatever columns a query projected.
type Record interface {
	// Columns maps every column name to a pointer to the backing field.
	Columns() map[string]any
}

// Project renders rec as a JSON object restricted to the given column names.
//
// Keys that are not backed by a column (populated relations such as a
// review's author or a tour's reviews) are kept as long as they are present
// in the serialized form. An empty fields list keeps everything.
func Project(rec Record, fields []string) (map[string]any, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("error marshaling record: %w", err)
	}

	var doc map[string]any
	if err = json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("error unmarshaling record: %w", err)
	}

	if len(fields) == 0 {
		return doc, nil
	}

	keep := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		keep[f] = struct{}{}
	}

	columns := rec.Columns()
	for key := range doc {
		if _, isColumn := columns[key]; !isColumn {
			continue
		}
		if _, ok := keep[key]; !ok {
			delete(doc, key)
		}
	}

	return doc, nil
}
