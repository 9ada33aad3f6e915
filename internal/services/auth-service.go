package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/repositories"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/service"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenResponseDTO, error)
	AdminLogin(ctx context.Context, payload dto.AdminLoginDTO) (*dto.TokenResponseDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenResponseDTO, error)
}

type AuthService struct {
	factoryRepo   repositories.FactoryRepositoryInterface
	jwtService    service.JWTService
	adminPassword string
	logger        *zap.Logger
}

func NewAuthService(
	factoryRepo repositories.FactoryRepositoryInterface,
	jwtService service.JWTService,
	adminPassword string,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		factoryRepo:   factoryRepo,
		jwtService:    jwtService,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

// Login opens a factory session. Passwords are stored and compared as plain
// text by contract; a wrong name and a wrong password are indistinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenResponseDTO, error) {
	factory, err := s.factoryRepo.FindFactoryByName(ctx, payload.FactoryName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if factory.Password != payload.Password {
		s.logger.Warn("failed factory login", zap.String("factory", payload.FactoryName))
		return nil, apperrors.ErrInvalidCredentials
	}

	access, refresh, err := s.jwtService.GenerateTokens(factory.ID, false)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		FactoryID:    factory.ID,
		FactoryName:  factory.Name,
		IsAdmin:      false,
	}, nil
}

// AdminLogin opens an administrator session against the configured password.
// Admin sessions carry no factory identity.
func (s *AuthService) AdminLogin(ctx context.Context, payload dto.AdminLoginDTO) (*dto.TokenResponseDTO, error) {
	if payload.Password != s.adminPassword {
		s.logger.Warn("failed admin login")
		return nil, apperrors.ErrInvalidCredentials
	}

	access, refresh, err := s.jwtService.GenerateTokens(0, true)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		IsAdmin:      true,
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	resp := &dto.TokenResponseDTO{IsAdmin: claims.IsAdmin}
	if !claims.IsAdmin {
		factory, err := s.factoryRepo.FindFactory(ctx, claims.FactoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrInvalidToken
			}
			return nil, err
		}
		resp.FactoryID = factory.ID
		resp.FactoryName = factory.Name
	}

	access, refresh, err := s.jwtService.GenerateTokens(claims.FactoryID, claims.IsAdmin)
	if err != nil {
		return nil, err
	}
	resp.AccessToken = access
	resp.RefreshToken = refresh
	return resp, nil
}
