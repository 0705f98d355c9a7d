package domain

type Registration struct {
	Name     string `json:"name" validate:"min=3"`
	Email    string `json:"email" validate:"loose_email"`
	Password string `json:"password" validate:"min=6"`
	Mobile   string `json:"mobile" validate:"mobile"`
}
