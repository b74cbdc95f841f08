package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strconv"
	"time"

	"momentcanvas/internal/cache"
	"momentcanvas/internal/config"
	"momentcanvas/internal/messages"
	"momentcanvas/internal/models"
	"momentcanvas/internal/observability"
	"momentcanvas/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair is the access/refresh pair handed to a client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService issues and rotates JWT pairs. The refresh token also lives in
// Redis keyed by user id; reissue compares the presented token with the
// stored copy so a stolen older token stops working as soon as a newer one
// is issued.
type AuthService struct {
	userRepo   repository.UserRepository
	tokens     *cache.RefreshTokenStore
	codes      *cache.ExchangeCodeStore
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *cache.RefreshTokenStore, codes *cache.ExchangeCodeStore, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		codes:      codes,
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

func (s *AuthService) signToken(user *models.User, ttl time.Duration, typ string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": string(user.Role),
		"typ":  typ,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := s.signToken(user, s.accessTTL, "access")
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, s.refreshTTL, "refresh")
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, user.ID, refresh); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Login authenticates a local account and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, loginID, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByLoginID(ctx, loginID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError(messages.Get("error.auth.invalid.credentials"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError(messages.Get("error.auth.invalid.credentials"))
	}
	if !user.IsActive() {
		return nil, models.NewUnauthorizedError(messages.Get("error.user.disabled"))
	}
	return s.issuePair(ctx, user)
}

// parseRefreshToken validates the signature and shape of a refresh JWT and
// returns the user id it was issued for.
func (s *AuthService) parseRefreshToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError(messages.Get("error.auth.token.invalid"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError(messages.Get("error.auth.token.invalid"))
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return 0, models.NewUnauthorizedError(messages.Get("error.auth.token.invalid"))
	}
	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError(messages.Get("error.auth.token.invalid"))
	}
	return uint(userID), nil
}

// Reissue rotates a token pair. Concurrent reissues for the same user are
// last-write-wins on the stored refresh token.
func (s *AuthService) Reissue(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		observability.TokenReissues.WithLabelValues("invalid_token").Inc()
		return nil, err
	}

	stored, err := s.tokens.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, cache.ErrTokenNotFound) {
			observability.TokenReissues.WithLabelValues("expired").Inc()
			return nil, models.NewUnauthorizedError(messages.Get("error.auth.token.expired"))
		}
		return nil, models.NewInternalError(err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		// The presented token was once valid but has been superseded.
		observability.TokenReissues.WithLabelValues("mismatch").Inc()
		return nil, models.NewUnauthorizedError(messages.Get("error.auth.token.invalid"))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		observability.TokenReissues.WithLabelValues("inactive_user").Inc()
		return nil, models.NewUnauthorizedError(messages.Get("error.user.disabled"))
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}
	observability.TokenReissues.WithLabelValues("success").Inc()
	return pair, nil
}

// Logout discards the stored refresh token, ending the session server-side.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if err := s.tokens.Delete(ctx, userID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// IssueExchangeCode issues a token pair for the user and parks it behind a
// short-lived one-time code, for flows that cannot receive tokens directly.
// This is the issue side of POST /api/auth/exchange: an OAuth2 callback
// handler mints the code and sends it to the browser via redirect. The
// provider handshake itself is not part of this server, so nothing routes
// here yet.
func (s *AuthService) IssueExchangeCode(ctx context.Context, user *models.User) (string, error) {
	if !user.IsActive() {
		return "", models.NewUnauthorizedError(messages.Get("error.user.disabled"))
	}
	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return "", err
	}
	code := uuid.NewString()
	if err := s.codes.Save(ctx, code, cache.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}); err != nil {
		return "", models.NewInternalError(err)
	}
	return code, nil
}

// ExchangeCode redeems a one-time code for its token pair.
func (s *AuthService) ExchangeCode(ctx context.Context, code string) (*TokenPair, error) {
	pair, err := s.codes.Consume(ctx, code)
	if err != nil {
		if errors.Is(err, cache.ErrTokenNotFound) {
			return nil, models.NewUnauthorizedError(messages.Get("error.auth.code.invalid"))
		}
		return nil, models.NewInternalError(err)
	}
	return &TokenPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}
