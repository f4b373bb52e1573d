package services

import (
	"errors"
	"time"

	"account-panel/internal/config"
	"account-panel/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already exists")
)

// Claims carries the token identity. The token is the sole proof of identity;
// there is no server-side session or revocation list.
type Claims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	cost := s.cfg.Security.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// Register creates a new user. Role defaults to "user" when empty; a
// caller-supplied role is stored as-is.
func (s *AuthService) Register(username, email, password, role string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	hashed, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = "user"
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     role,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies credentials and returns the user. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// UserExists reports whether the user id still has a row. Used to catch
// tokens that outlived their account.
func (s *AuthService) UserExists(id uint) (bool, error) {
	var user models.User
	if err := s.db.Select("id").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GenerateToken issues a signed token embedding the identity fields
func (s *AuthService) GenerateToken(id uint, username, email, role string) (string, error) {
	expiresIn, err := time.ParseDuration(s.cfg.JWT.ExpiresIn)
	if err != nil || expiresIn == 0 {
		expiresIn = 24 * time.Hour
	}

	now := time.Now()
	claims := Claims{
		UserID:   id,
		Username: username,
		Email:    email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret()))
}

// ParseToken parses and validates a token string
func (s *AuthService) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(s.secret()), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

// EnsureDefaultAdmin inserts the default administrator if no row with its
// username or email exists. Idempotent across restarts.
func (s *AuthService) EnsureDefaultAdmin() error {
	def := s.cfg.DefaultUser
	if def.Username == "" {
		def.Username = "admin"
	}
	if def.Email == "" {
		def.Email = "admin@example.com"
	}
	if def.Password == "" {
		def.Password = "admin123"
	}
	if def.Role == "" {
		def.Role = "admin"
	}

	_, err := s.Register(def.Username, def.Email, def.Password, def.Role)
	if errors.Is(err, ErrUserExists) {
		return nil
	}
	return err
}

func (s *AuthService) secret() string {
	if s.cfg.JWT.Secret != "" {
		return s.cfg.JWT.Secret
	}
	return "account-panel-default-secret-change-in-production"
}
