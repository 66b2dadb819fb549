package client

import "encoding/json"

// Pagination mirrors the backend's pagination block on list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Envelope is the response wrapper every backend endpoint uses. Data is left
// raw so callers decode into their own types.
type Envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Decode unmarshals the envelope's data into dest. An absent data field
// leaves dest untouched.
func (e *Envelope) Decode(dest any) error {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	return json.Unmarshal(e.Data, dest)
}
