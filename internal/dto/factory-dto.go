package dto

type CreateFactoryDTO struct {
	Name     string `json:"name" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=4"`
}

type UpdateFactoryDTO struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=4"`
}

type FactoryDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}
