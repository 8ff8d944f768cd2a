package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"eduboard/internal/models"
	"eduboard/internal/repository"
)

// AuthService представляет сервис авторизации
type AuthService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService создает новый сервис авторизации
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// AuthResult представляет результат авторизации
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
	Role  string       `json:"role"`
}

// Login проверяет учетные данные и выдает JWT токен.
// Пароли сравниваются как есть: хранилище учетных данных
// не является границей безопасности в этой системе.
func (s *AuthService) Login(username, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if user.Password != password {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{
		User:  user,
		Token: token,
		Role:  string(user.Role),
	}, nil
}

// ValidateToken валидирует JWT токен и возвращает пользователя
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		idVal, ok := claims["user_id"].(float64)
		if !ok {
			return nil, fmt.Errorf("invalid token claims")
		}

		user, err := s.userRepo.GetByID(int64(idVal))
		if err != nil {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return user, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// generateJWT генерирует JWT токен для пользователя
func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"jti":      uuid.New().String(),
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.jwtExpiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
