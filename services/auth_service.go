package services

import (
	stderrors "errors"
	"strconv"

	"uninest/config"
	"uninest/constants"
	"uninest/dto"
	"uninest/errors"
	"uninest/models"
	"uninest/services/logger"
	"uninest/validator"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultTokenExpiryMinutes = 3 * 24 * 60

// AuthService handles registration, credential login and Google sign-in.
type AuthService struct {
	db  *gorm.DB
	log logger.Logger
}

type AuthServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &AuthService{db: opts.DB, log: l}
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// Register creates a student or hostel-owner account. Admin accounts are
// never created through the public endpoint.
func (s *AuthService) Register(req dto.RegisterRequest) (*models.User, error) {
	if err := validator.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if err := validator.ValidatePhone(req.Phone); err != nil {
		return nil, err
	}

	role := constants.RoleStudent
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil || parsed == constants.RoleAdmin {
			return nil, errors.NewAppError(errors.ErrCodeInvalidRole, "Invalid role", err)
		}
		role = parsed
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, errors.NewAppError(errors.ErrCodeUserExists, "Email already in use", errors.ErrUserAlreadyExists)
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	if err := SendWelcomeEmail(user.Email, user.FirstName); err != nil {
		s.log.Error("welcome email to %s failed: %v", user.Email, err)
	}
	return &user, nil
}

// Login checks the credentials and issues an access token.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errors.NewAppError(errors.ErrCodeUserNotFound, "Invalid email or password", errors.ErrUserNotFound)
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", errors.NewAppError(errors.ErrCodeInvalidPassword, "Invalid email or password", errors.ErrInvalidPassword)
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// LoginGoogle finds or creates the student account behind a verified
// Google identity and issues an access token.
func (s *AuthService) LoginGoogle(email, firstName, lastName, avatar string) (*models.User, string, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:      email,
			FirstName:  firstName,
			LastName:   lastName,
			Avatar:     avatar,
			Role:       constants.RoleStudent,
			IsVerified: true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, "", err
		}
	} else if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	expiry := defaultTokenExpiryMinutes
	if v := configTokenExpiry(); v > 0 {
		expiry = v
	}
	return GenerateToken(UserInfo{UserID: user.ID, Role: user.Role}, expiry)
}

func configTokenExpiry() int {
	raw := config.GetEnv("TOKEN_EXPIRY_MINUTES")
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
