package request

type CreateRequestReq struct {
	Description string `json:"description" validate:"required"`
}

type pageQuery struct {
	From int `query:"from" validate:"gte=0"`
	Size int `query:"size" validate:"gt=0"`
}
