package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linkedweld/linkedweld-api/internal/config"
	"github.com/linkedweld/linkedweld-api/internal/middleware"
	"github.com/linkedweld/linkedweld-api/internal/model"
	"github.com/linkedweld/linkedweld-api/internal/queue"
	"github.com/linkedweld/linkedweld-api/internal/repository"
	"github.com/linkedweld/linkedweld-api/internal/utils"
)

const dbTimeout = 5 * time.Second

// EventPublisher sends a domain event to the broker. Its error is always
// ignored by the handlers: events are side effects, never preconditions.
type EventPublisher func(ctx context.Context, ev queue.Event) error

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg     config.Config
	Users   UserStore
	Tokens  TokenStore
	Publish EventPublisher
}

func NewAuthHandler(cfg config.Config, users UserStore, tokens TokenStore, publish EventPublisher) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens, Publish: publish}
}

// ----- DTOs -----

type registerReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type verifyReq struct {
	Code string `json:"code"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
type authResp struct {
	User   model.User `json:"user"`
	Tokens tokenPair  `json:"tokens"`
}
type registerResp struct {
	User             model.User `json:"user"`
	Tokens           tokenPair  `json:"tokens"`
	VerificationCode string     `json:"verificationCode"`
}

// issueTokens mints an access/refresh pair and persists the refresh token.
func (h *AuthHandler) issueTokens(ctx context.Context, userID uint64) (tokenPair, error) {
	access, err := utils.NewAccessToken(h.Cfg.AccessSecret, userID, h.Cfg.AccessTTLMin)
	if err != nil {
		return tokenPair{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshSecret, userID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return tokenPair{}, err
	}
	exp := time.Now().UTC().Add(time.Duration(h.Cfg.RefreshTTLDays) * 24 * time.Hour)
	if err := h.Tokens.Insert(ctx, userID, refresh, exp); err != nil {
		return tokenPair{}, err
	}
	return tokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Register creates an unverified user and returns tokens plus the pending
// verification code. The code also travels to the broker for out-of-band
// delivery; that delivery is fire-and-forget and cannot fail registration.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return jsonErr(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return jsonErr(c, http.StatusBadRequest, "All fields are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Registration failed")
	}
	code, err := utils.NewVerificationCode()
	if err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Registration failed")
	}
	codeExpiry := time.Now().UTC().Add(time.Duration(h.Cfg.VerifyCodeTTLMin) * time.Minute)

	user := model.User{
		Email:              req.Email,
		PasswordHash:       hash,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Role:               "candidate",
		Subscription:       "free",
		VerificationCode:   &code,
		VerificationExpiry: &codeExpiry,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	if err := h.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return jsonErr(c, http.StatusConflict, "Email already registered")
		}
		return jsonErr(c, http.StatusInternalServerError, "Registration failed")
	}

	tokens, err := h.issueTokens(ctx, user.ID)
	if err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Registration failed")
	}

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.Event{
			Type: queue.TypeUserRegistered,
			UserRegistered: &queue.UserRegisteredEvent{
				UserID:           user.ID,
				Email:            user.Email,
				FirstName:        user.FirstName,
				VerificationCode: code,
				RegisteredAt:     time.Now().UTC().Format(time.RFC3339),
			},
		})
	}

	return jsonOK(c, http.StatusCreated, registerResp{
		User:             user,
		Tokens:           tokens,
		VerificationCode: code,
	})
}

// Login verifies credentials and issues a fresh token pair. An unknown
// email and a wrong password produce the identical response so the two
// cases cannot be told apart.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return jsonErr(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return jsonErr(c, http.StatusBadRequest, "Email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return jsonErr(c, http.StatusUnauthorized, "Invalid email or password")
		}
		return jsonErr(c, http.StatusInternalServerError, "Login failed")
	}
	if !utils.VerifyPassword(user.PasswordHash, req.Password) {
		return jsonErr(c, http.StatusUnauthorized, "Invalid email or password")
	}

	// Unverified users still get tokens; verification-gated features are
	// enforced where they live, not here.
	tokens, err := h.issueTokens(ctx, user.ID)
	if err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Login failed")
	}
	return jsonOK(c, http.StatusOK, authResp{User: user, Tokens: tokens})
}

// Verify checks the submitted code against the caller's pending
// verification code. Re-verifying an already verified account succeeds
// without touching state.
func (h *AuthHandler) Verify(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return jsonErr(c, http.StatusUnauthorized, "Not authenticated")
	}
	var req verifyReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		return jsonErr(c, http.StatusBadRequest, "Verification code is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return jsonErr(c, http.StatusNotFound, "User not found")
		}
		return jsonErr(c, http.StatusInternalServerError, "Verification failed")
	}
	if user.IsVerified {
		return jsonOK(c, http.StatusOK, echo.Map{"message": "Already verified", "isVerified": true})
	}
	if user.VerificationCode == nil || *user.VerificationCode != strings.TrimSpace(req.Code) {
		return jsonErr(c, http.StatusBadRequest, "Invalid verification code")
	}
	if user.VerificationExpiry != nil && time.Now().UTC().After(*user.VerificationExpiry) {
		return jsonErr(c, http.StatusBadRequest, "Verification code has expired")
	}

	if err := h.Users.MarkVerified(ctx, userID); err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Verification failed")
	}
	return jsonOK(c, http.StatusOK, echo.Map{"message": "Email verified successfully", "isVerified": true})
}

// Me returns the caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return jsonErr(c, http.StatusUnauthorized, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return jsonErr(c, http.StatusNotFound, "User not found")
		}
		return jsonErr(c, http.StatusInternalServerError, "Lookup failed")
	}
	return jsonOK(c, http.StatusOK, user)
}

// UpdateMe applies a partial profile update. Unrecognized fields in the
// body are ignored; a body with nothing recognized is rejected.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return jsonErr(c, http.StatusUnauthorized, "Not authenticated")
	}
	var upd model.ProfileUpdate
	if err := c.Bind(&upd); err != nil {
		return jsonErr(c, http.StatusBadRequest, "Invalid request body")
	}
	if upd.Empty() {
		return jsonErr(c, http.StatusBadRequest, "No valid fields to update")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.Users.UpdateProfile(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return jsonErr(c, http.StatusNotFound, "User not found")
		}
		return jsonErr(c, http.StatusInternalServerError, "Update failed")
	}
	return jsonOK(c, http.StatusOK, user)
}

// Refresh rotates a refresh token: the presented token is deleted and a
// new pair is issued. A token that verifies cryptographically but has no
// stored row was already rotated and is rejected, which is what makes
// replaying an old token fail.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return jsonErr(c, http.StatusUnauthorized, "Refresh token required")
	}
	token := strings.TrimSpace(req.RefreshToken)

	userID, err := utils.ParseRefreshToken(h.Cfg.RefreshSecret, token)
	if err != nil {
		return jsonErr(c, http.StatusUnauthorized, "Invalid refresh token")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Tokens.Find(ctx, token); err != nil {
		return jsonErr(c, http.StatusUnauthorized, "Invalid refresh token")
	}
	// The delete is the rotation point: only the caller that actually
	// removes the row may mint a replacement.
	deleted, err := h.Tokens.Delete(ctx, token)
	if err != nil || !deleted {
		return jsonErr(c, http.StatusUnauthorized, "Invalid refresh token")
	}

	tokens, err := h.issueTokens(ctx, userID)
	if err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Refresh failed")
	}
	return jsonOK(c, http.StatusOK, tokens)
}

// Logout deletes the presented refresh token if any. Always succeeds:
// logging out twice, or with a token this server never stored, is fine.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)

	if token := strings.TrimSpace(req.RefreshToken); token != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
		defer cancel()
		_, _ = h.Tokens.Delete(ctx, token)
	}
	return jsonOK(c, http.StatusOK, echo.Map{"message": "Logged out"})
}
