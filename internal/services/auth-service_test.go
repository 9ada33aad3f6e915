package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/service"
)

func newTestAuthService(factories ...entities.Factory) (AuthServiceInterface, service.JWTService) {
	jwtSvc := service.NewJWTService("test-secret", time.Minute, time.Hour)
	repo := newStubFactoryRepo(factories...)
	return NewAuthService(repo, jwtSvc, "super-secret", zap.NewNop()), jwtSvc
}

func TestLogin(t *testing.T) {
	svc, jwtSvc := newTestAuthService(entities.Factory{ID: 3, Name: "pusan", Password: "hunter2"})

	tokens, err := svc.Login(context.Background(), dto.LoginDTO{FactoryName: "pusan", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), tokens.FactoryID)
	assert.Equal(t, "pusan", tokens.FactoryName)
	assert.False(t, tokens.IsAdmin)

	claims, err := jwtSvc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), claims.FactoryID)
	assert.False(t, claims.IsAdmin)
}

func TestLoginExactMatchOnly(t *testing.T) {
	svc, _ := newTestAuthService(entities.Factory{ID: 3, Name: "pusan", Password: "hunter2"})

	cases := []dto.LoginDTO{
		{FactoryName: "pusan", Password: "Hunter2"},
		{FactoryName: "pusan", Password: "hunter2 "},
		{FactoryName: "no-such-factory", Password: "hunter2"},
	}
	for _, payload := range cases {
		_, err := svc.Login(context.Background(), payload)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
}

func TestAdminLogin(t *testing.T) {
	svc, jwtSvc := newTestAuthService()

	tokens, err := svc.AdminLogin(context.Background(), dto.AdminLoginDTO{Password: "super-secret"})
	require.NoError(t, err)
	assert.True(t, tokens.IsAdmin)
	assert.Zero(t, tokens.FactoryID)

	claims, err := jwtSvc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)

	_, err = svc.AdminLogin(context.Background(), dto.AdminLoginDTO{Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc, jwtSvc := newTestAuthService(entities.Factory{ID: 7, Name: "ulsan", Password: "pw"})

	_, refresh, err := jwtSvc.GenerateTokens(7, false)
	require.NoError(t, err)

	tokens, err := svc.Refresh(context.Background(), dto.RefreshDTO{RefreshToken: refresh})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), tokens.FactoryID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, jwtSvc := newTestAuthService(entities.Factory{ID: 7, Name: "ulsan", Password: "pw"})

	access, _, err := jwtSvc.GenerateTokens(7, false)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), dto.RefreshDTO{RefreshToken: access})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestRefreshDeletedFactory(t *testing.T) {
	jwtSvc := service.NewJWTService("test-secret", time.Minute, time.Hour)
	svc := NewAuthService(newStubFactoryRepo(), jwtSvc, "super-secret", zap.NewNop())

	_, refresh, err := jwtSvc.GenerateTokens(42, false)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), dto.RefreshDTO{RefreshToken: refresh})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
