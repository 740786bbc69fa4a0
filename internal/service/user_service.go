package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"
	"backend/pkg/listquery"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role" binding:"required"`
	Status    string `json:"status"`
}

type UpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"omitempty,min=6"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

// AuthResult carries the signed access token and the stored refresh token
// alongside the authenticated user.
type AuthResult struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

type UserStats struct {
	TotalUsers int64 `json:"total_users"`
	Active     int64 `json:"active"`
	Inactive   int64 `json:"inactive"`
	Admins     int64 `json:"admins"`
}

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID uint) (*model.User, error)

	List(ctx context.Context, q listquery.Params) ([]model.User, int64, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	Create(ctx context.Context, req CreateUserRequest) (*model.User, error)
	Update(ctx context.Context, id uint, req UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*UserStats, error)
}

type userService struct {
	db *gorm.DB
	tx repository.TransactionManager
}

func NewUserService(db *gorm.DB, tx repository.TransactionManager) UserService {
	return &userService{db: db, tx: tx}
}

func validRole(role string) bool {
	switch role {
	case model.RoleAdmin, model.RoleManager, model.RoleFinance, model.RoleProcurement,
		model.RoleQuality, model.RoleDesigner, model.RoleViewer:
		return true
	}
	return false
}

func (s *userService) findByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) signAccessToken(user *model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"role":  user.Role,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(accessTokenTTL).Unix(),
	})
	return token.SignedString(middleware.GetJWTSecret())
}

// issueTokens signs a fresh access token and rotates the stored refresh token
// for the user.
func (s *userService) issueTokens(ctx context.Context, user *model.User) (*AuthResult, error) {
	accessToken, err := s.signAccessToken(user)
	if err != nil {
		return nil, apperr.Internal("Failed to generate token", err)
	}

	refresh := model.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.New(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := repository.GetDB(txCtx, s.db)
		if err := db.WithContext(txCtx).Where("user_id = ?", user.ID).Delete(&model.RefreshToken{}).Error; err != nil {
			return err
		}
		return repository.Create(txCtx, db, &refresh)
	})
	if err != nil {
		return nil, apperr.Internal("Failed to generate token", err)
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refresh.Token.String(),
	}, nil
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	role := req.Role
	if role == "" {
		role = model.RoleViewer
	}
	if !validRole(role) {
		return nil, apperr.Validation("Invalid role")
	}
	if _, err := s.findByEmail(ctx, req.Email); err == nil {
		return nil, apperr.Validation("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("Failed to register user", err)
	}

	user := model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      role,
		Status:    model.UserActive,
	}
	if err := repository.Create(ctx, s.db, &user); err != nil {
		return nil, apperr.Internal("Failed to register user", err)
	}
	return s.issueTokens(ctx, &user)
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	if user.Status != model.UserActive {
		return nil, apperr.Forbidden("Account is inactive")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	return s.issueTokens(ctx, user)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	tokenID, err := uuid.Parse(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	var stored model.RefreshToken
	if err := s.db.WithContext(ctx).Where("token = ?", tokenID).First(&stored).Error; err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		s.db.WithContext(ctx).Delete(&stored)
		return nil, apperr.Unauthorized("Refresh token expired")
	}

	user, err := repository.FindByID[model.User](ctx, s.db, stored.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}
	return s.issueTokens(ctx, user)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := uuid.Parse(refreshToken)
	if err != nil {
		return nil
	}
	return s.db.WithContext(ctx).Where("token = ?", tokenID).Delete(&model.RefreshToken{}).Error
}

func (s *userService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	return s.Get(ctx, userID)
}

func (s *userService) List(ctx context.Context, q listquery.Params) ([]model.User, int64, error) {
	rows, total, err := repository.ListPage[model.User](ctx, s.db, repository.UserListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve users", err)
	}
	return rows, total, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := repository.FindByID[model.User](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	if !validRole(req.Role) {
		return nil, apperr.Validation("Invalid role")
	}
	if _, err := s.findByEmail(ctx, req.Email); err == nil {
		return nil, apperr.Validation("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("Failed to create user", err)
	}

	user := model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      req.Role,
		Status:    model.UserActive,
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	if err := repository.Create(ctx, s.db, &user); err != nil {
		return nil, apperr.Internal("Failed to create user", err)
	}
	return &user, nil
}

func (s *userService) Update(ctx context.Context, id uint, req UpdateUserRequest) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != "" {
		if !validRole(req.Role) {
			return nil, apperr.Validation("Invalid role")
		}
		user.Role = req.Role
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := s.findByEmail(ctx, req.Email); err == nil {
			return nil, apperr.Validation("Email already registered")
		}
		user.Email = req.Email
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Internal("Failed to update user", err)
		}
		user.Password = string(hashed)
	}

	if err := repository.Save(ctx, s.db, user); err != nil {
		return nil, apperr.Internal("Failed to update user", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := repository.GetDB(txCtx, s.db)
		if err := db.WithContext(txCtx).Where("user_id = ?", id).Delete(&model.RefreshToken{}).Error; err != nil {
			return err
		}
		return repository.DeleteByID[model.User](txCtx, db, id)
	})
	if err != nil {
		return apperr.Internal("Failed to delete user", err)
	}
	return nil
}

func (s *userService) Stats(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_users,
			COALESCE(SUM(CASE WHEN status = 'Active' THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN status = 'Inactive' THEN 1 ELSE 0 END), 0) AS inactive,
			COALESCE(SUM(CASE WHEN role = 'Admin' THEN 1 ELSE 0 END), 0) AS admins
		FROM users
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve user statistics", err)
	}
	return &stats, nil
}
