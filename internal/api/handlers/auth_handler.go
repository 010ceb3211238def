package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
	"github.com/techbay/auth-backend/internal/apperr"
	"github.com/techbay/auth-backend/internal/auth"
	"github.com/techbay/auth-backend/internal/imaging"
	"github.com/techbay/auth-backend/internal/models"
	"github.com/techbay/auth-backend/internal/passport"
	"github.com/techbay/auth-backend/internal/services"
)

// AuthHandler handles registration, login and passport retrieval.
type AuthHandler struct {
	profiles services.ProfileServiceProvider
	tokens   *auth.JWT
	store    *passport.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(profiles services.ProfileServiceProvider, tokens *auth.JWT, store *passport.Store) *AuthHandler {
	return &AuthHandler{profiles: profiles, tokens: tokens, store: store}
}

// RegisterPayload defines the structure for registration requests. The
// passport is a base64-encoded PNG or SVG image.
type RegisterPayload struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashedPassword"`
	Passport       string `json:"passport"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashedPassword"`
}

// UserInfo is the login response.
type UserInfo struct {
	UserID      int    `json:"userId"`
	Username    string `json:"username"`
	Displayname string `json:"displayname"`
	Token       string `json:"token"`
	Passport    string `json:"passport"`
}

// CurrentUserInfo is the current-user response. The token field is always
// empty; no fresh token is issued here.
type CurrentUserInfo struct {
	UserID      int    `json:"userId"`
	Username    string `json:"username"`
	Displayname string `json:"displayname"`
	Token       string `json:"token"`
}

// Register handles new user registration: the passport image is normalized
// to PNG and stored before the profile row is created.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		apperr.Write(w, err)
		return
	}

	picture, err := base64.StdEncoding.DecodeString(payload.Passport)
	if err != nil {
		apperr.Write(w, apperr.Newf(apperr.Validation, "Error parsing base64 encoded passport. %v", err))
		return
	}

	mime := mimetype.Detect(picture)
	log.Info().Str("username", payload.Username).Str("mime", mime.String()).Msg("Registering new user")

	normalized, err := imaging.Normalize(picture, mime.String())
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to normalize passport")
		apperr.Write(w, err)
		return
	}

	if err := h.store.Write(payload.Username, normalized); err != nil {
		apperr.Write(w, err)
		return
	}

	_, err = h.profiles.Create(r.Context(), models.CreateProfile{
		Username:    payload.Username,
		Password:    payload.HashedPassword,
		Displayname: payload.Username,
	})
	if err != nil {
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to create profile")
		apperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Login authenticates by exact credential match and responds with a fresh
// token plus the stored passport, base64-encoded. Re-reading the blob here
// also validates stored-image integrity on every login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		apperr.Write(w, err)
		return
	}

	profile, err := h.profiles.GetByCredentials(r.Context(), payload.Username, payload.HashedPassword)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed login attempt")
		apperr.Write(w, err)
		return
	}

	token, err := h.tokens.Issue(profile.ID, auth.RoleUser, profile.Username, profile.Displayname)
	if err != nil {
		log.Error().Err(err).Int("user_id", profile.ID).Msg("Failed to issue token")
		apperr.Write(w, err)
		return
	}

	blob, err := h.store.Read(profile.Username)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	if !mimetype.Detect(blob).Is("image/png") {
		apperr.Write(w, apperr.New(apperr.Internal, "Passport has wrong file format!"))
		return
	}

	writeJSON(w, http.StatusOK, UserInfo{
		UserID:      profile.ID,
		Username:    profile.Username,
		Displayname: profile.Displayname,
		Token:       token,
		Passport:    base64.StdEncoding.EncodeToString(blob),
	})
}

// CurrentUser returns the authenticated caller's profile info.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFrom(r.Context())
	if !ok {
		log.Error().Msg("Missing user id in request context")
		apperr.Write(w, apperr.New(apperr.Internal, "Missing user id in request context"))
		return
	}

	profile, err := h.profiles.GetByID(r.Context(), uid)
	if err != nil {
		log.Warn().Err(err).Int("user_id", uid).Msg("User from token not found")
		apperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CurrentUserInfo{
		UserID:      profile.ID,
		Username:    profile.Username,
		Displayname: profile.Displayname,
		Token:       "",
	})
}

// Passport returns the caller's stored passport as a base64 string. Blobs
// that no longer sniff as PNG respond 406 with a success-shaped body rather
// than an error envelope.
func (h *AuthHandler) Passport(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFrom(r.Context())
	if !ok {
		log.Error().Msg("Missing user id in request context")
		apperr.Write(w, apperr.New(apperr.Internal, "Missing user id in request context"))
		return
	}

	profile, err := h.profiles.GetByID(r.Context(), uid)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	blob, err := h.store.Read(profile.Username)
	if err != nil {
		log.Warn().Err(err).Str("username", profile.Username).Msg("Failed to read passport")
		apperr.Write(w, err)
		return
	}

	if !mimetype.Detect(blob).Is("image/png") {
		writeJSON(w, http.StatusNotAcceptable, "Wrong passport file format!")
		return
	}

	writeJSON(w, http.StatusOK, base64.StdEncoding.EncodeToString(blob))
}
