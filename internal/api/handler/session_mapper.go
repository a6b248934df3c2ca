package handler

import (
	"github.com/fincount/counting-api/internal/core/domain"
	"github.com/fincount/counting-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateSessionInput(req createSessionRequest, idempotencyKey string) ports.CreateSessionInput {
	return ports.CreateSessionInput{
		BatchID:        req.BatchID,
		Species:        req.Species,
		Location:       req.Location,
		Notes:          req.Notes,
		Counts:         domain.Counts(req.Counts),
		Timestamp:      req.Timestamp,
		ImageURL:       req.ImageURL,
		UserID:         req.UserID,
		IdempotencyKey: idempotencyKey,
	}
}

func toUpdateSessionInput(req updateSessionRequest) ports.UpdateSessionInput {
	return ports.UpdateSessionInput{
		Species:  req.Species,
		Location: req.Location,
		Notes:    req.Notes,
		Counts:   domain.Counts(req.Counts),
	}
}

// --- Domain → HTTP response ---

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:        s.ID,
		BatchID:   s.BatchID,
		Species:   string(s.Species),
		Location:  string(s.Location),
		Notes:     s.Notes,
		Counts:    s.Counts,
		Timestamp: s.Timestamp,
		ImageURL:  s.ImageURL,
	}
}

func toSessionListResponse(list *ports.SessionList) sessionListResponse {
	items := make([]sessionResponse, len(list.Sessions))
	for i, s := range list.Sessions {
		items[i] = toSessionResponse(s)
	}
	return sessionListResponse{
		Success: true,
		Data: sessionListData{
			Sessions: items,
			Pagination: paginationResponse{
				Total: list.Total,
				Page:  list.Page,
				Limit: list.Limit,
			},
		},
	}
}
