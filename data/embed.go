// Package data holds the default parameter tables shipped with the binary.
package data

import "embed"

// FS contains buildings.json, items.json, training.json, furnace.json and
// production_factors.json.
//
//go:embed *.json
var FS embed.FS
