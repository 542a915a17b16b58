package model

import "encoding/json"

// Backup is the export/restore document. Trades and Accounts are raw so a
// restore can tell a missing key apart from an empty array.
type Backup struct {
	Trades           json.RawMessage `json:"trades"`
	Accounts         json.RawMessage `json:"accounts"`
	DirectionHistory json.RawMessage `json:"directionHistory,omitempty"`
	ExportDate       string          `json:"exportDate"`
}
