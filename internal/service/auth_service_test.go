package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/dto"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
	appErrors "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/errors"
)

type userStoreStub struct {
	byEmail map[string]*models.User
	created []*models.User
}

func (s *userStoreStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (s *userStoreStub) Create(ctx context.Context, user *models.User) error {
	user.ID = "user-1"
	s.created = append(s.created, user)
	return nil
}

func newAuthForTest(users *userStoreStub) *AuthService {
	return NewAuthService(users, nil, nil, AuthConfig{TokenSecret: "test-secret"})
}

func TestAuthRegisterIssuesToken(t *testing.T) {
	users := &userStoreStub{byEmail: map[string]*models.User{}}
	svc := newAuthForTest(users)

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "amy@vu.edu", Name: "Amy", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "amy@vu.edu", resp.Email)

	require.Len(t, users.created, 1)
	assert.Equal(t, models.UserTypeStudent, users.created[0].UserType)
	assert.NotEqual(t, "correct horse", users.created[0].PasswordHash)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "amy@vu.edu", claims.Email)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestAuthRegisterRejectsDuplicateEmail(t *testing.T) {
	users := &userStoreStub{byEmail: map[string]*models.User{
		"amy@vu.edu": {Email: "amy@vu.edu"},
	}}
	svc := newAuthForTest(users)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "amy@vu.edu", Name: "Amy", Password: "correct horse",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAuthLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &userStoreStub{byEmail: map[string]*models.User{
		"amy@vu.edu": {ID: "user-1", Email: "amy@vu.edu", Name: "Amy", PasswordHash: string(hash)},
	}}
	svc := newAuthForTest(users)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "amy@vu.edu", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "amy@vu.edu", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "ghost@vu.edu", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthValidateTokenRejectsTampering(t *testing.T) {
	svc := newAuthForTest(&userStoreStub{byEmail: map[string]*models.User{}})
	other := NewAuthService(&userStoreStub{}, nil, nil, AuthConfig{TokenSecret: "different-secret"})

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "amy@vu.edu", Name: "Amy", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(resp.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
