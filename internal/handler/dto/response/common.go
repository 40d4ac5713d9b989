package response

import "github.com/google/uuid"

type IDResponse struct {
	ID uuid.UUID `json:"id"`
}

type IDsResponse struct {
	IDs []uuid.UUID `json:"ids"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type RegionResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}
