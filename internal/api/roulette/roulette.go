package roulette

import (
	"errors"
	"net/http"
	dto "roulette_backend/internal/api/dto/roulette"
	"roulette_backend/internal/converter"
	"roulette_backend/internal/service"
	rouletteModel "roulette_backend/internal/service/roulette/model"
	"roulette_backend/pkg/req"
	"roulette_backend/pkg/resp"
	"strconv"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.RouletteService
	Log  *zap.Logger
}

type Handler struct {
	serv service.RouletteService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log}
}

// Config - номиналы фишек, категории и множители
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToConfigResponse(h.serv.GameInfo()))
}

// Prizes - каталог призов
func (h *Handler) Prizes(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPrizes(h.serv.Prizes()))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}

func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	table, err := h.serv.Table(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTableResponse(table))
}

func (h *Handler) SelectChip(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SelectChipRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, err := h.serv.SelectChip(r.Context(), payload.Value)
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTableResponse(table))
}

func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.PlaceBetRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	category, err := rouletteModel.ParseCategory(payload.Category)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, err := h.serv.PlaceBet(r.Context(), category)
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTableResponse(table))
}

func (h *Handler) ClearBets(w http.ResponseWriter, r *http.Request) {
	table, err := h.serv.ClearBets(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTableResponse(table))
}

// Spin - крутит колесо. Ответ приходит после анимации вращения
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	result, err := h.serv.Spin(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(result))
}

// Rounds - история раундов, ?limit=N
func (h *Handler) Rounds(w http.ResponseWriter, r *http.Request) {
	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			resp.WriteError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	rounds, err := h.serv.Rounds(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRounds(rounds))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidChip), errors.Is(err, service.ErrInvalidCategory):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoUser):
		resp.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrNoBets),
		errors.Is(err, service.ErrRoundInProgress):
		resp.WriteError(w, http.StatusConflict, err.Error())
	default:
		h.log.Error("roulette request failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
