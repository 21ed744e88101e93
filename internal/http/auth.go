package http

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sohamkakraa/TabScape/internal/core"
	applog "github.com/sohamkakraa/TabScape/internal/log"
	"github.com/sohamkakraa/TabScape/internal/storage"
)

const sessionCookieName = "tabscape_session"

type userIDKey struct{}

// userID returns the authenticated user for the request. Only valid behind
// requireAuth.
func userID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// newSessionToken returns the raw token for the cookie and its hash for
// storage. Only the hash ever touches the database.
func newSessionToken() (token, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate session token: %w", err)
	}
	token = hex.EncodeToString(buf)
	return token, hashToken(token), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) issueSession(ctx context.Context, w http.ResponseWriter, uid string) error {
	token, hash, err := newSessionToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.sessionTTL)
	if err := s.storage.CreateSession(ctx, storage.Session{
		TokenHash: hash,
		UserID:    uid,
		ExpiresAt: expiresAt,
	}); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	s.setSessionCookie(w, token, expiresAt)
	return nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondError(w, http.StatusBadRequest, "valid email required")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		respondStorageError(w, r, fmt.Errorf("hash password: %w", err))
		return
	}

	uid := uuid.NewString()
	if err := s.storage.CreateUser(r.Context(), storage.User{
		ID:           uid,
		Email:        req.Email,
		PasswordHash: string(hash),
	}); err != nil {
		respondStorageError(w, r, err)
		return
	}

	if err := s.seedDefaults(r.Context(), uid); err != nil {
		// The account exists; defaults can be re-saved through the API.
		s.logger.LogError(r.Context(), "Failed seeding defaults for new user", err,
			applog.ComponentAuth, applog.OpCreate, applog.NewFields().WithUser(uid))
	}

	if err := s.issueSession(r.Context(), w, uid); err != nil {
		respondStorageError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "User registered",
		applog.FieldComponent, applog.ComponentAuth, applog.FieldUserID, uid)
	respondJSON(w, http.StatusCreated, sessionResponse{UserID: uid, Email: req.Email})
}

// seedDefaults gives a fresh account a usable starting state: payday
// settings, preferences, and a single-member household.
func (s *Server) seedDefaults(ctx context.Context, uid string) error {
	if err := s.storage.SavePaydaySettings(ctx, uid, core.PaydaySettings{
		SalaryDay:         25,
		CurrentBalance:    0,
		Buffer:            150,
		MustPayCategories: []core.Category{core.Rent, core.Utilities},
	}); err != nil {
		return fmt.Errorf("seed payday settings: %w", err)
	}
	if err := s.storage.SavePreferences(ctx, uid, core.UserPreference{
		DashboardLayout: "cards",
		Currency:        "EUR",
		Location:        "Berlin, DE",
		Theme:           "light",
	}); err != nil {
		return fmt.Errorf("seed preferences: %w", err)
	}
	householdID := uuid.NewString()
	if err := s.storage.SaveHousehold(ctx, uid, core.Household{
		ID:   householdID,
		Name: "My Household",
	}); err != nil {
		return fmt.Errorf("seed household: %w", err)
	}
	if err := s.storage.UpsertMember(ctx, householdID, core.HouseholdMember{
		ID:   uuid.NewString(),
		Name: "You",
	}); err != nil {
		return fmt.Errorf("seed household member: %w", err)
	}
	return nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.storage.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondStorageError(w, r, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := s.issueSession(r.Context(), w, user.ID); err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{UserID: user.ID, Email: user.Email})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := s.storage.DeleteSession(r.Context(), hashToken(cookie.Value)); err != nil {
			slog.WarnContext(r.Context(), "Failed to delete session on logout", "error", err)
		}
	}
	clearSessionCookie(w)
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())
	user, err := s.storage.GetUserByID(r.Context(), uid)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{UserID: user.ID, Email: user.Email})
}

// requireAuth resolves the session cookie to a user and extends sessions
// nearing expiry: once a session enters the last third of its TTL, the
// expiry slides forward by a full TTL.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		hash := hashToken(cookie.Value)
		session, err := s.storage.GetSession(r.Context(), hash)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				clearSessionCookie(w)
				respondError(w, http.StatusUnauthorized, "session expired")
				return
			}
			respondStorageError(w, r, err)
			return
		}

		now := time.Now()
		if !session.ExpiresAt.After(now) {
			clearSessionCookie(w)
			respondError(w, http.StatusUnauthorized, "session expired")
			return
		}

		if session.ExpiresAt.Sub(now) < s.sessionTTL/3 {
			newExpiry := now.Add(s.sessionTTL)
			if err := s.storage.ExtendSession(r.Context(), hash, newExpiry); err != nil {
				slog.WarnContext(r.Context(), "Failed to extend session", "error", err)
			} else {
				s.setSessionCookie(w, cookie.Value, newExpiry)
			}
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, session.UserID)
		next(w, r.WithContext(ctx))
	}
}
