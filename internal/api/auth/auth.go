package auth

import (
	"errors"
	"net/http"
	dto "roulette_backend/internal/api/dto/auth"
	"roulette_backend/internal/converter"
	"roulette_backend/internal/service"
	"roulette_backend/pkg/req"
	"roulette_backend/pkg/resp"
	"time"

	"go.uber.org/zap"
)

const (
	sessionIDCookie    = "session_id"
	refreshTokenCookie = "refresh_token"
	refreshCookiePath  = "/auth"
)

type HandlerDeps struct {
	Serv service.AuthService
	Log  *zap.Logger
	// CookieTTL - время жизни cookies, совпадает со сроком сессии
	CookieTTL time.Duration
}

type Handler struct {
	serv      service.AuthService
	log       *zap.Logger
	cookieTTL time.Duration
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:      deps.Serv,
		log:       deps.Log,
		cookieTTL: deps.CookieTTL,
	}
}

// Login создаёт игрока со стартовым балансом, открывает сессию
// и возвращает access_token, а session_id и refresh_token через cookies
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data, err := h.serv.Login(r.Context(), requestBody.Name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidName) {
			resp.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("login failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.setSessionIDCookie(w, data.SessionID)
	h.setRefreshTokenCookie(w, data.RefreshToken)

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToLoginResponse(data))
}

// Me возвращает вошедшего игрока по cookie session_id
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionIDCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, service.ErrNoUser.Error())
		return
	}

	user, err := h.serv.Restore(r.Context(), c.Value)
	if err != nil {
		if errors.Is(err, service.ErrNoUser) {
			deleteSessionIDCookie(w)
			deleteRefreshTokenCookie(w)
			resp.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error("restore failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "restore failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToUserResponse(user))
}

// Refresh выдает новый access_token по session_id и refresh_token
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	sid, err := r.Cookie(sessionIDCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no session_id cookie")
		return
	}
	rt, err := r.Cookie(refreshTokenCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no refresh_token cookie")
		return
	}

	accessToken, err := h.serv.Refresh(r.Context(), sid.Value, rt.Value)
	if err != nil {
		if errors.Is(err, service.ErrNoUser) || errors.Is(err, service.ErrInvalidToken) {
			resp.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error("refresh failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "refresh failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.RefreshResponse{AccessToken: accessToken})
}

// Logout закрывает сессию по session_id и удаляет игрока
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionIDCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no session_id cookie")
		return
	}

	if err := h.serv.Logout(r.Context(), c.Value); err != nil {
		h.log.Error("logout failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	deleteSessionIDCookie(w)
	deleteRefreshTokenCookie(w)

	w.WriteHeader(http.StatusNoContent)
}

// setRefreshTokenCookie устанавливает cookie с refresh_token
func (h *Handler) setRefreshTokenCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     refreshCookiePath,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.cookieTTL.Seconds()),
	})
}

// deleteRefreshTokenCookie удаляет cookie с refresh_token
func deleteRefreshTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// setSessionIDCookie устанавливает cookie с session_id
func (h *Handler) setSessionIDCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionIDCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(h.cookieTTL.Seconds()),
	})
}

// deleteSessionIDCookie удаляет cookie с session_id
func deleteSessionIDCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionIDCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
