package dto

type LoginDTO struct {
	FactoryName string `json:"factory_name" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type AdminLoginDTO struct {
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponseDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	FactoryID    uint64 `json:"factory_id,omitempty"`
	FactoryName  string `json:"factory_name,omitempty"`
	IsAdmin      bool   `json:"is_admin"`
}
