package models

// APIResponse is the uniform envelope returned by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success builds a successful envelope around the payload.
func Success(data interface{}, message string) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// Error builds a failed envelope. The detail travels in the data field so
// clients get the same shape for successes and failures.
func Error(message, detail string) APIResponse {
	return APIResponse{Success: false, Message: message, Data: detail}
}
