package httpapi

import (
	"github.com/katalvlaran/lvfold/fold"
	"github.com/katalvlaran/lvfold/internal/service"
)

// FoldRequest is the request body for POST /api/v1/fold and /api/v1/count.
type FoldRequest struct {
	Sequence string `json:"sequence"`
	Model    string `json:"model,omitempty"`
}

// FoldResponse is the response body for POST /api/v1/fold.
type FoldResponse struct {
	Sequence   string   `json:"sequence"`
	Model      string   `json:"model"`
	Optimum    float64  `json:"optimum"`
	Structures []string `json:"structures"`
	Count      string   `json:"count"` // decimal, may exceed 64 bits
	Truncated  bool     `json:"truncated"`
}

// CountResponse is the response body for POST /api/v1/count.
type CountResponse struct {
	Sequence string `json:"sequence"`
	Count    string `json:"count"`
}

// ConsensusRequest is the request body for POST /api/v1/consensus.
type ConsensusRequest struct {
	Structures []string `json:"structures"`
}

// DesignRequest is the request body for POST /api/v1/design.
type DesignRequest struct {
	Target   string `json:"target"`
	Sequence string `json:"sequence,omitempty"`
	Model    string `json:"model,omitempty"`
}

// DesignResponse is the response body for POST /api/v1/design.
type DesignResponse struct {
	service.DesignResult
	Count string `json:"count"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string   `json:"status"`
	Models []string `json:"models"`
}

func newFoldResponse(r fold.Result) FoldResponse {
	return FoldResponse{
		Sequence:   r.Sequence,
		Model:      r.Model,
		Optimum:    r.Optimum,
		Structures: r.Structures,
		Count:      r.Count.String(),
		Truncated:  r.Truncated,
	}
}
