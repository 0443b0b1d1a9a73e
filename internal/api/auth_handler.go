package api

import (
	"log/slog"
	"net/http"

	"github.com/souqhq/souq-api/internal/api/shared"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/service/auth"
	"github.com/souqhq/souq-api/internal/store"
)

// AuthHandler handles signup, login and token refresh.
type AuthHandler struct {
	users      store.DocumentStore[domain.User]
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	users store.DocumentStore[domain.User],
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		hasher:     hasher,
		logger:     log.With(slog.String("component", "auth_handler")),
	}
}

// Signup handles the /auth/signup endpoint.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, hashed)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.users.Insert(r.Context(), user.ID, user); err != nil {
		RespondError(w, r, err)
		return
	}

	h.respondWithTokens(w, r, user, http.StatusCreated)
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.FindOne(r.Context(), "email", req.Email)
	if err != nil {
		if store.IsNotFoundError(err) {
			RespondError(w, r, auth.ErrInvalidCredentials)
			return
		}
		RespondError(w, r, err)
		return
	}

	if err := h.hasher.Compare(user.HashedPassword, req.Password); err != nil {
		RespondError(w, r, auth.ErrInvalidCredentials)
		return
	}

	h.respondWithTokens(w, r, user, http.StatusOK)
}

// Refresh handles the /auth/refresh endpoint: a valid refresh token buys a
// new token pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	// Re-read the user so a role change or deactivation takes effect on the
	// next refresh.
	user, err := h.users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			RespondError(w, r, auth.ErrInvalidToken)
			return
		}
		RespondError(w, r, err)
		return
	}

	h.respondWithTokens(w, r, user, http.StatusOK)
}

func (h *AuthHandler) respondWithTokens(
	w http.ResponseWriter,
	r *http.Request,
	user *domain.User,
	status int,
) {
	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.Role)
	if err != nil {
		h.logger.Error("failed to generate token",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), user.ID, user.Role)
	if err != nil {
		h.logger.Error("failed to generate refresh token",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, status, AuthResponse{
		UserID:       user.ID,
		AccessToken:  token,
		RefreshToken: refreshToken,
	})
}
