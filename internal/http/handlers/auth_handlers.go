package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/stocksync/internal/auth"
	"go.uber.org/zap"
)

// AnonymousSessionHandler godoc
// @Summary Sign in anonymously
// @Description Creates a fresh tenant and returns a session token for it.
// @Tags session
// @Produce json
// @Success 201 {object} SessionResult
// @Failure 500 {string} string "Internal error"
// @Router /session/anonymous [post]
func AnonymousSessionHandler(w http.ResponseWriter, r *http.Request) {
	identity := auth.NewIdentity(signer)
	token, err := identity.SignInAnonymously()
	if err != nil {
		zap.L().Error("anonymous sign-in failed", zap.Error(err))
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}
	subject, _ := identity.CurrentSubjectID()
	respond(w, http.StatusCreated, SessionResult{Token: token, Subject: subject, Anonymous: true})
}

// TokenSessionHandler godoc
// @Summary Sign in with a custom token
// @Description Exchanges a custom token issued by a trusted backend for a session token.
// @Tags session
// @Accept json
// @Produce json
// @Param credentials body CustomTokenRequest true "Custom token"
// @Success 200 {object} SessionResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Invalid token"
// @Router /session/token [post]
func TokenSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req CustomTokenRequest
	if err := readJSON(w, r, &req); err != nil || req.Token == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	identity := auth.NewIdentity(signer)
	token, err := identity.SignInWithToken(req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrWrongKind) {
			http.Error(w, "not a custom token", http.StatusUnauthorized)
			return
		}
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	subject, _ := identity.CurrentSubjectID()
	respond(w, http.StatusOK, SessionResult{Token: token, Subject: subject})
}

// SignOutHandler godoc
// @Summary Sign out
// @Description Revokes the session token used for this request.
// @Tags session
// @Security BearerAuth
// @Success 204 "Signed out"
// @Failure 500 {string} string "Internal error"
// @Router /session/signout [post]
func SignOutHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}
	if claims.ExpiresAt != nil {
		if err := revocations.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			zap.L().Error("failed to revoke token", zap.Error(err))
			http.Error(w, "failed to sign out", http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
