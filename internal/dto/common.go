package dto

type SuccessResponse struct {
	Message string `json:"message"`
}

func NewSuccessResponse(msg string) SuccessResponse {
	return SuccessResponse{Message: msg}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Page: общие параметры пагинации для списков.
type Page struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}
