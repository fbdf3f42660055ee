package response

// Envelope is the structured body shared by all non-2xx responses and by
// domain CRUD success responses. Failure bodies never carry stack traces
// or internal identifiers, only a human-readable message.
type Envelope struct {
	Success bool        `json:"success"`          // false for every failure response
	Message string      `json:"message"`          // human-readable message
	Data    interface{} `json:"data,omitempty"`   // payload for success
	Errors  interface{} `json:"errors,omitempty"` // validation details
}
