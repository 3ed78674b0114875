package item

type CreateItemReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"request_id" validate:"omitempty,gt=0"`
}

type UpdateItemReq struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"request_id" validate:"omitempty,gt=0"`
}

type CreateCommentReq struct {
	Text string `json:"text" validate:"required"`
}

type pageQuery struct {
	From int `query:"from" validate:"gte=0"`
	Size int `query:"size" validate:"gt=0"`
}
