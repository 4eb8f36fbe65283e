package request

type LoginRequest struct {
	Token string `form:"token" binding:"required"`
	Next  string `form:"next"`
}
