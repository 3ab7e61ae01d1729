package models

import "encoding/json"

// Input is the canonical request shape fed to the engine. Fields holds the
// service-specific input values keyed by canonical names ("pan", "id_number",
// "name_1", ...); Raw is the original request body, kept verbatim for audit
// rows.
type Input struct {
	Fields map[string]string
	Raw    json.RawMessage
}

// Get returns a field value or "" when absent.
func (in Input) Get(key string) string {
	return in.Fields[key]
}
