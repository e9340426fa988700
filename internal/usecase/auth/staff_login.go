package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user inactive")
)

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type User struct {
	ID           string
	Email        string
	GivenName    string
	PasswordHash string
	IsActive     bool
}

type LoginResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"` // seconds
}

type StaffLoginUsecase struct {
	finder    UserFinder
	jwtSecret []byte
	expMin    int
}

func NewStaffLoginUsecase(finder UserFinder, jwtSecret string, expiresMinutes int) *StaffLoginUsecase {
	if expiresMinutes <= 0 {
		expiresMinutes = 60
	}
	return &StaffLoginUsecase{
		finder:    finder,
		jwtSecret: []byte(jwtSecret),
		expMin:    expiresMinutes,
	}
}

func (u *StaffLoginUsecase) Execute(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := u.finder.FindByEmail(ctx, email)
	if err != nil {
		// Hide whether email exists
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	exp := now.Add(time.Duration(u.expMin) * time.Minute)

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"typ":   "staff",
		"email": user.Email,
		"name":  user.GivenName,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(u.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: signed,
		ExpiresIn:   u.expMin * 60,
	}, nil
}
