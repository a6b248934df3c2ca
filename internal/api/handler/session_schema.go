package handler

// --- Request / Response types ---

type createSessionRequest struct {
	BatchID   string         `json:"batchId"   validate:"required"`
	Species   string         `json:"species"   validate:"required"`
	Location  string         `json:"location"  validate:"required"`
	Notes     string         `json:"notes"`
	Counts    map[string]int `json:"counts"    validate:"required"`
	Timestamp string         `json:"timestamp" validate:"required"`
	ImageURL  string         `json:"imageUrl"`
	UserID    string         `json:"userId"`
}

// updateSessionRequest carries a partial update: absent fields stay nil and
// leave the stored value unchanged.
type updateSessionRequest struct {
	Species  *string        `json:"species"`
	Location *string        `json:"location"`
	Notes    *string        `json:"notes"`
	Counts   map[string]int `json:"counts"`
}

// sessionResponse mirrors the mobile client's session shape. The stored
// creation time is internal and deliberately not exposed here.
type sessionResponse struct {
	ID        string         `json:"id"`
	BatchID   string         `json:"batchId"`
	Species   string         `json:"species"`
	Location  string         `json:"location"`
	Notes     string         `json:"notes"`
	Counts    map[string]int `json:"counts"`
	Timestamp string         `json:"timestamp"`
	ImageURL  string         `json:"imageUrl"`
}

type paginationResponse struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type sessionListData struct {
	Sessions   []sessionResponse  `json:"sessions"`
	Pagination paginationResponse `json:"pagination"`
}

type sessionListResponse struct {
	Success bool            `json:"success"`
	Data    sessionListData `json:"data"`
}

type sessionCreateResponse struct {
	Success bool            `json:"success"`
	Data    sessionResponse `json:"data"`
	Message string          `json:"message"`
}
