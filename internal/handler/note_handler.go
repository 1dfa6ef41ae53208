package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"quicknotes-server/internal/domain"
	"quicknotes-server/internal/middleware"
	"quicknotes-server/internal/service"
	"quicknotes-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type NoteHandler struct {
	service  *service.NoteService
	validate *validator.Validate
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	note, err := h.service.Create(middleware.GetUserID(r), &req)
	if err != nil {
		response.InternalError(w, "Failed to create note")
		return
	}

	response.JSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	var tags []string
	if raw := r.URL.Query().Get("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	notes, err := h.service.List(middleware.GetUserID(r), tags)
	if err != nil {
		response.InternalError(w, "Failed to list notes")
		return
	}

	response.JSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	note, err := h.service.Get(middleware.GetUserID(r), noteID)
	if err != nil {
		h.writeNoteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	note, err := h.service.Update(middleware.GetUserID(r), noteID, &req)
	if err != nil {
		h.writeNoteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	note, err := h.service.Delete(middleware.GetUserID(r), noteID)
	if err != nil {
		h.writeNoteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, note)
}

func (h *NoteHandler) writeNoteError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNoteNotFound) {
		response.NotFound(w, "Note not found")
		return
	}
	response.InternalError(w, "Internal server error")
}
