package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/picshare/picshare/pkg/internal/models"
	"github.com/rs/xid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const jwtIssuer = "picshare"

// Auth owns signup, login and the session token set. Tokens are HS256 JWTs
// whose ID claim points at a persisted session row, so revoking the row
// (logout, cleanup) invalidates the token before its expiry.
type Auth struct {
	db        *gorm.DB
	directory *Directory
	secret    []byte
	lifetime  time.Duration
}

func NewAuth(db *gorm.DB, directory *Directory, secret string, lifetime time.Duration) *Auth {
	if lifetime <= 0 {
		lifetime = 7 * 24 * time.Hour
	}
	return &Auth{
		db:        db,
		directory: directory,
		secret:    []byte(secret),
		lifetime:  lifetime,
	}
}

func (v *Auth) Lifetime() time.Duration {
	return v.lifetime
}

func (v *Auth) Signup(name, username, password string) (models.Account, error) {
	var account models.Account

	if err := ValidatePassword(password); err != nil {
		return account, err
	}

	var count int64
	if err := v.db.Model(&models.Account{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return account, fmt.Errorf("unable to check username availability: %v", err)
	}
	if count > 0 {
		return account, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account, fmt.Errorf("unable to hash password: %v", err)
	}

	account = models.Account{
		ID:        uuid.NewString(),
		Name:      name,
		Username:  username,
		Password:  string(hash),
		Followers: datatypes.NewJSONSlice([]string{}),
		Following: datatypes.NewJSONSlice([]string{}),
	}

	if err := v.db.Create(&account).Error; err != nil {
		return account, fmt.Errorf("unable to create account: %v", err)
	}

	return account, nil
}

func (v *Auth) Login(username, password string) (models.Account, string, error) {
	account, err := v.directory.GetAccountByUsername(username)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return account, "", ErrInvalidCredentials
		}
		return account, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return account, "", ErrInvalidCredentials
	}

	token, err := v.issueSession(account)
	return account, token, err
}

func (v *Auth) issueSession(account models.Account) (string, error) {
	now := time.Now()

	session := models.Session{
		ID:        xid.New().String(),
		ExpiredAt: now.Add(v.lifetime),
		AccountID: account.ID,
	}
	if err := v.db.Create(&session).Error; err != nil {
		return "", fmt.Errorf("unable to persist session: %v", err)
	}

	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   account.ID,
		Issuer:    jwtIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiredAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("unable to sign session token: %v", err)
	}

	return signed, nil
}

// Authenticate resolves a presented bearer token back to its account. The
// token must verify and its session row must still exist.
func (v *Auth) Authenticate(tokenStr string) (models.Account, models.Session, error) {
	var session models.Session

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(jwtIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || token == nil || !token.Valid {
		return models.Account{}, session, ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || len(claims.ID) == 0 || len(claims.Subject) == 0 {
		return models.Account{}, session, ErrUnauthorized
	}

	if err := v.db.Where("id = ? AND account_id = ?", claims.ID, claims.Subject).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Account{}, session, ErrUnauthorized
		}
		return models.Account{}, session, fmt.Errorf("unable to look up session: %v", err)
	}
	if time.Now().After(session.ExpiredAt) {
		return models.Account{}, session, ErrUnauthorized
	}

	account, err := v.directory.GetAccount(session.AccountID)
	if err != nil {
		return account, session, ErrUnauthorized
	}

	return account, session, nil
}

// Logout removes exactly one session; tokens on the account's other devices
// stay valid.
func (v *Auth) Logout(session models.Session) error {
	if err := v.db.Delete(&models.Session{}, "id = ?", session.ID).Error; err != nil {
		return fmt.Errorf("unable to remove session: %v", err)
	}
	return nil
}

// ValidatePassword enforces the signup password policy: at least 8
// characters with a lowercase letter, an uppercase letter, a digit and one
// of !@#$%^&*.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !strings.ContainsAny(password, "!@#$%^&*") {
		return ErrWeakPassword
	}
	return nil
}
