package models

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Points int64  `json:"points,omitempty"`
	Tier   string `json:"tier,omitempty"`
}
