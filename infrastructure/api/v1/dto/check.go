// Package dto holds request and response bodies of the v1 API that are not
// plain resources.
package dto

// CheckAttributes are the optional settings of a check request. Nil fields
// fall back to the server configuration.
type CheckAttributes struct {
	Versions []string `json:"versions,omitempty"`
	Content  *bool    `json:"content,omitempty"`
	External *bool    `json:"external,omitempty"`
}

// CheckData represents check request data in JSON:API format.
type CheckData struct {
	Type       string          `json:"type"`
	Attributes CheckAttributes `json:"attributes"`
}

// CheckRequest represents a JSON:API check request.
type CheckRequest struct {
	Data CheckData `json:"data"`
}
