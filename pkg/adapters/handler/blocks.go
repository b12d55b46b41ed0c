package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

type BlockHandler struct {
	service ports.BlockService
	log     *zap.Logger
}

func NewBlockHandler(service ports.BlockService, log *zap.Logger) *BlockHandler {
	return &BlockHandler{service: service, log: log}
}

func (h *BlockHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	blocks, err := h.service.List(r.Context(), uid)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": blocks})
}

func (h *BlockHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req ports.BlockInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	block, err := h.service.Create(r.Context(), uid, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, block)
}

func (h *BlockHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req ports.BlockInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	block, err := h.service.Update(r.Context(), uid, id, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, block)
}

func (h *BlockHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req activeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if req.Active == nil {
		writeMessage(w, http.StatusBadRequest, "is_active is required")
		return
	}

	block, err := h.service.SetActive(r.Context(), uid, id, *req.Active)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, block)
}

func (h *BlockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.service.Delete(r.Context(), uid, id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BlockHandler) Move(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	blocks, err := h.service.Move(r.Context(), uid, req.ID, req.From, req.To)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": blocks})
}
