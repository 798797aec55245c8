package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/feedtamer/config"
	"github.com/d60-Lab/feedtamer/internal/model"
	"github.com/d60-Lab/feedtamer/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

const bcryptCost = 12

// UserUpdate 资料补丁（不含密码）
type UserUpdate struct {
	Name           *string          `json:"name,omitempty"`
	ProfilePicture *string          `json:"profilePicture,omitempty"`
	Preferences    *model.UserPrefs `json:"preferences,omitempty"`
}

// AuthService 注册/登录/令牌校验；密码一律 bcrypt，身份一律 JWT
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	// Authenticate 校验 Bearer token 并解析出活跃用户
	Authenticate(ctx context.Context, token string) (*model.User, error)
	Me(ctx context.Context, userID string) (*model.User, error)
	UpdateMe(ctx context.Context, userID string, upd UserUpdate) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, current, next string) (string, error)
	DeleteMe(ctx context.Context, userID string) error
}

type authService struct {
	users repository.UserRepository
	jwt   config.JWTConfig
}

func NewAuthService(users repository.UserRepository, jwtCfg config.JWTConfig) AuthService {
	return &authService{users: users, jwt: jwtCfg}
}

func (s *authService) signToken(userID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.jwt.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwt.ExpiresIn)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwt.Secret))
}

func (s *authService) Signup(ctx context.Context, name, email, password string) (*model.User, string, error) {
	if _, err := s.users.GetActiveByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{Name: name, Email: email, Password: string(hashed)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.signToken(user.ID, time.Now())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不泄露邮箱是否存在
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.signToken(user.ID, time.Now())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwt.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetActive(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	// 签发后改过密码的 token 作废
	if claims.IssuedAt != nil && user.ChangedPasswordAfter(claims.IssuedAt.Time) {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateMe(ctx context.Context, userID string, upd UserUpdate) (*model.User, error) {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.ProfilePicture != nil {
		user.ProfilePicture = *upd.ProfilePicture
	}
	if upd.Preferences != nil {
		user.Preferences = *upd.Preferences
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID, current, next string) (string, error) {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return "", ErrWrongPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return "", err
	}
	// 改密后重新签发，旧 token 由 ChangedPasswordAfter 拦截
	return s.signToken(userID, time.Now())
}

func (s *authService) DeleteMe(ctx context.Context, userID string) error {
	return s.users.Deactivate(ctx, userID)
}
