package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	// SubscriptionFlagger answers whether a viewer follows each of the given authors.
	SubscriptionFlagger interface {
		Subscribed(ctx context.Context, subscriberID string, authorIDs []string) (map[string]bool, error)
	}

	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		GetUser(ctx context.Context, viewerID, id string) (domain.UserResponse, error)
		SetPassword(ctx context.Context, userID string, req domain.SetPasswordRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		subscriptions  SubscriptionFlagger
		log            *zap.Logger
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, subscriptions SubscriptionFlagger, log *zap.Logger) UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		subscriptions:  subscriptions,
		log:            log.Named("user"),
	}
}

// ToResponse converts a stored user into its public shape.
func ToResponse(u *entities.User, isSubscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           u.ID.String(),
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	req.Email = strings.TrimSpace(req.Email)

	exists, err := s.userRepository.CheckEmail(ctx, req.Email)
	if err != nil {
		return domain.UserResponse{}, domain.StorageError("check email", err)
	}
	if exists {
		return domain.UserResponse{}, domain.ErrEmailAlreadyUsed
	}

	exists, err = s.userRepository.CheckUsername(ctx, req.Username)
	if err != nil {
		return domain.UserResponse{}, domain.StorageError("check username", err)
	}
	if exists {
		return domain.UserResponse{}, domain.ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, fmt.Errorf("%w: hash password: %w", domain.ErrInternal, err)
	}

	user := &entities.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
		Role:      domain.RoleUser,
	}
	if err := s.userRepository.RegisterUser(ctx, user); err != nil {
		return domain.UserResponse{}, domain.StorageError("register user", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return ToResponse(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, domain.StorageError("load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return domain.LoginResponse{}, fmt.Errorf("%w: sign token: %w", domain.ErrInternal, err)
	}
	return domain.LoginResponse{AuthToken: token}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return ToResponse(user, false), nil
}

func (s *userService) GetUser(ctx context.Context, viewerID, id string) (domain.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return domain.UserResponse{}, err
	}

	subscribed := false
	if viewerID != "" && s.subscriptions != nil {
		flags, err := s.subscriptions.Subscribed(ctx, viewerID, []string{user.ID.String()})
		if err != nil {
			return domain.UserResponse{}, domain.StorageError("load subscription flags", err)
		}
		subscribed = flags[user.ID.String()]
	}
	return ToResponse(user, subscribed), nil
}

func (s *userService) SetPassword(ctx context.Context, userID string, req domain.SetPasswordRequest) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: hash password: %w", domain.ErrInternal, err)
	}
	return domain.StorageError("update password", s.userRepository.UpdatePassword(ctx, userID, string(hashed)))
}

func (s *userService) getUser(ctx context.Context, id string) (*entities.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.StorageError("load user", err)
	}
	return user, nil
}
