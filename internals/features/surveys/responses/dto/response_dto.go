package dto

type SubmitResponseRequest struct {
	FormID    int64          `json:"form_id" validate:"required,gt=0"`
	Responses map[string]any `json:"responses" validate:"required"`
}
