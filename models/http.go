// Package models defines the data entities shared by all layers of the
// application: persisted records (User, Detection), authentication tokens,
// and the HTTP request/response payloads built from them.
package models

// SignupRequest is the JSON body of POST /api/v1/auth/signup.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body of POST /api/v1/auth/login.
// The form-based /auth/token endpoint decodes into the same structure.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the payload returned by both login endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// DetectionList is the paginated listing payload: the owner's total record
// count alongside the requested page.
type DetectionList struct {
	Total int64       `json:"total"`
	Items []Detection `json:"items"`
}

// DetectionStatus is the polling payload of GET /detections/status/{id}.
//
// While processing, only Status, DetectionID and Message are set. Once the
// AI engine has reported back, Status flips to "completed" and the full
// record is embedded.
type DetectionStatus struct {
	Status      string     `json:"status"`
	DetectionID int64      `json:"detection_id,omitempty"`
	Message     string     `json:"message,omitempty"`
	Detection   *Detection `json:"detection,omitempty"`
}
