package api

import (
	"log/slog"
	"net/http"

	"github.com/souqhq/souq-api/internal/api/shared"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/service"
	"github.com/souqhq/souq-api/internal/service/auth"
)

// UserHandler serves the admin user CRUD plus the self-service endpoints
// for the authenticated account. Every response path maps the user through
// UserResponse so the password hash never leaves the server.
type UserHandler struct {
	svc    *service.Resource[domain.User]
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(
	users *service.Resource[domain.User],
	hasher auth.PasswordHasher,
	log *slog.Logger,
) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		svc:    users,
		hasher: hasher,
		logger: log.With(slog.String("component", "user_handler")),
	}
}

// parseUserCreate builds a user from the admin create payload, hashing the
// password and applying the requested role.
func (h *UserHandler) parseUserCreate(r *http.Request) (*domain.User, error) {
	var req CreateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return nil, wrapBadRequest(err)
	}
	if err := shared.ValidateRequest(req); err != nil {
		return nil, wrapBadRequest(err)
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(req.Name, req.Email, hashed)
	if err != nil {
		return nil, err
	}
	user.Phone = req.Phone
	if req.Role != "" {
		user.Role = req.Role
	}
	return user, nil
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.svc.Get(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Data: toUserResponse(user)})
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := h.parseUserCreate(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	created, err := h.svc.Create(r.Context(), user.ID, user)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, DataResponse{Data: toUserResponse(created)})
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, pagination, _, err := h.svc.List(r.Context(), nil, r.URL.Query())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	data := make([]UserResponse, len(users))
	for i := range users {
		data[i] = *toUserResponse(&users[i])
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ListResponse{
		Results:          len(data),
		PaginationResult: pagination,
		Data:             data,
	})
}

// Update handles PUT /users/{id}. Password and server-owned fields cannot
// be patched here.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var patch map[string]any
	if err := shared.DecodeJSON(r, &patch); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	for _, key := range protectedPatchKeys {
		delete(patch, key)
	}
	delete(patch, "password")
	delete(patch, "hashedPassword")
	delete(patch, "slug")
	if name, ok := patch["name"].(string); ok {
		patch["slug"] = domain.Slugify(name)
	}
	if len(patch) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No updatable fields in request")
		return
	}

	updated, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Data: toUserResponse(updated)})
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// GetMe returns the authenticated user's own account.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Data: toUserResponse(user)})
}

// ChangeMyPassword verifies the current password and replaces the hash.
func (h *UserHandler) ChangeMyPassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	if err := h.hasher.Compare(user.HashedPassword, req.CurrentPassword); err != nil {
		RespondError(w, r, auth.ErrInvalidCredentials)
		return
	}

	hashed, err := h.hasher.Hash(req.NewPassword)
	if err != nil {
		h.logger.Error("failed to hash password", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to change password")
		return
	}

	updated, err := h.svc.Update(r.Context(), userID, map[string]any{
		"hashedPassword": hashed,
	})
	if err != nil {
		RespondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Data: toUserResponse(updated)})
}

func toUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Slug:         u.Slug,
		Email:        u.Email,
		Phone:        u.Phone,
		ProfileImage: u.ProfileImage,
		Role:         u.Role,
		Active:       u.Active,
		Wishlist:     u.Wishlist,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
