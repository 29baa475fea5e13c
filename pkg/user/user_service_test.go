package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/jwt"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	users map[string]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*entities.User{}}
}

func (f *fakeUserRepository) RegisterUser(_ context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) CheckEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepository) CheckUsername(_ context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, id string, hashed string) error {
	f.users[id].Password = hashed
	return nil
}

type fakeSubscriptions map[string]bool

func (f fakeSubscriptions) Subscribed(_ context.Context, subscriberID string, authorIDs []string) (map[string]bool, error) {
	flags := map[string]bool{}
	for _, id := range authorIDs {
		flags[id] = f[subscriberID+">"+id]
	}
	return flags, nil
}

var registerAlice = domain.RegisterRequest{
	Email:     "alice@example.com",
	Username:  "alice",
	FirstName: "Alice",
	LastName:  "Liddell",
	Password:  "wonderland",
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	jwtService := jwt.NewJWTServiceWithSecret("secret")
	svc := NewUserService(newFakeUserRepository(), jwtService, nil, nil)

	created, err := svc.Register(ctx, registerAlice)
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)
	assert.False(t, created.IsSubscribed)

	_, err = svc.Register(ctx, registerAlice)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyUsed)

	dup := registerAlice
	dup.Email = "other@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "ALICE@example.com", Password: "wonderland"})
	require.NoError(t, err)
	userID, role, err := jwtService.GetUserIDByToken(res.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, domain.RoleUser, role)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "bob@example.com", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepository()
	viewer := uuid.NewString()
	svc := NewUserService(repo, jwt.NewJWTServiceWithSecret("secret"), nil, nil)

	created, err := svc.Register(ctx, registerAlice)
	require.NoError(t, err)

	svc = NewUserService(repo, jwt.NewJWTServiceWithSecret("secret"), fakeSubscriptions{viewer + ">" + created.ID: true}, nil)

	got, err := svc.GetUser(ctx, viewer, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSubscribed)

	got, err = svc.GetUser(ctx, "", created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsSubscribed)

	me, err := svc.Me(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)

	_, err = svc.GetUser(ctx, viewer, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.GetUser(ctx, viewer, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSetPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepository(), jwt.NewJWTServiceWithSecret("secret"), nil, nil)
	created, err := svc.Register(ctx, registerAlice)
	require.NoError(t, err)

	err = svc.SetPassword(ctx, created.ID, domain.SetPasswordRequest{CurrentPassword: "wrong", NewPassword: "looking-glass"})
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	require.NoError(t, svc.SetPassword(ctx, created.ID, domain.SetPasswordRequest{CurrentPassword: "wonderland", NewPassword: "looking-glass"}))

	_, err = svc.Login(ctx, domain.LoginRequest{Email: registerAlice.Email, Password: "wonderland"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, domain.LoginRequest{Email: registerAlice.Email, Password: "looking-glass"})
	assert.NoError(t, err)
}
