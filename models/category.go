package models

type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"-"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
