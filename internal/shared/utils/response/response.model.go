// Package response defines the JSON envelope every roomly endpoint
// replies with, success and error alike.
package response

// StandardApiResponse is the envelope. Data carries the payload on
// success; Errors carries binding or domain error details on failure.
type StandardApiResponse struct {
	Status     string      `json:"status"` // "success" or "error"
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}
