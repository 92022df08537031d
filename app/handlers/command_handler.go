package handlers

import (
	"net/http"
	"strings"

	"autoglm-helper/app/domains"
	"autoglm-helper/app/dto"
	"autoglm-helper/app/services"
	"autoglm-helper/app/utils"

	"github.com/gin-gonic/gin"
)

// CommandHandler handles stored commands, their history and the pending mailbox
type CommandHandler struct {
	commands *services.CommandService
	pending  *services.PendingService
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(commands *services.CommandService, pending *services.PendingService) *CommandHandler {
	return &CommandHandler{commands: commands, pending: pending}
}

// PushCommand places a command in the mailbox and persists it
func (h *CommandHandler) PushCommand(c *gin.Context) {
	var req dto.PushCommandRequest
	if !bindRequest(c, &req) {
		return
	}

	pushed, err := h.pending.Push(c.Request.Context(), req.ToPendingCommand())
	if err != nil {
		if utils.IsValidationError(err) {
			respondFailure(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(c, http.StatusOK, pendingResponse(pushed))
}

// PullCommand returns the pending command, clearing it unless clear=false
func (h *CommandHandler) PullCommand(c *gin.Context) {
	consume := c.Query("clear") != "false"

	cmd, ok := h.pending.Pull(consume)
	if !ok {
		respondJSON(c, http.StatusOK, dto.EmptyMailboxResponse{Success: true, Empty: true})
		return
	}
	respondJSON(c, http.StatusOK, pendingResponse(cmd))
}

// ListCommands returns every stored command
func (h *CommandHandler) ListCommands(c *gin.Context) {
	commands, err := h.commands.ListCommands(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(c, http.StatusOK, dto.NewCommandListResponse(commands))
}

// SaveCommand creates a command, or merges into the stored one when an id is given
func (h *CommandHandler) SaveCommand(c *gin.Context) {
	var req dto.UpsertCommandRequest
	if !bindRequest(c, &req) {
		return
	}

	stored, err := h.commands.UpsertCommand(c.Request.Context(), req.ToCommand())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if stored == nil {
		respondFailure(c, http.StatusBadRequest, "title or content is required")
		return
	}
	respondJSON(c, http.StatusOK, dto.CommandSavedResponse{
		Success: true,
		ID:      stored.ID,
		Command: dto.NewCommandResponse(*stored),
	})
}

// UpdateCommand overwrites the title and content of a command
func (h *CommandHandler) UpdateCommand(c *gin.Context) {
	var req dto.UpdateCommandRequest
	if !bindRequest(c, &req) {
		return
	}

	commands, err := h.commands.UpdateCommand(c.Request.Context(), c.Param("id"), req.Title, req.Content)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(c, http.StatusOK, dto.NewCommandListResponse(commands))
}

// DeleteCommand removes a command
func (h *CommandHandler) DeleteCommand(c *gin.Context) {
	commands, err := h.commands.DeleteCommand(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(c, http.StatusOK, dto.NewCommandListResponse(commands))
}

// GetHistory lists the runs of the command named by ?id=
func (h *CommandHandler) GetHistory(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		respondFailure(c, http.StatusBadRequest, "id required")
		return
	}

	history, err := h.commands.GetHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	resp := dto.HistoryListResponse{Success: true, History: make([]dto.HistoryEntryResponse, len(history))}
	for i, entry := range history {
		resp.History[i] = dto.NewHistoryEntryResponse(entry)
	}
	respondJSON(c, http.StatusOK, resp)
}

// RecordHistory appends a run and reflects its result on the command
func (h *CommandHandler) RecordHistory(c *gin.Context) {
	var req dto.HistoryRequest
	if !bindRequest(c, &req) {
		return
	}

	entry, err := h.commands.RecordRun(c.Request.Context(), req.ToHistory())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(c, http.StatusOK, dto.HistorySavedResponse{Success: true, Entry: dto.NewHistoryEntryResponse(*entry)})
}

func pendingResponse(cmd domains.PendingCommand) dto.PendingCommandResponse {
	return dto.PendingCommandResponse{
		Success:   true,
		ID:        cmd.ID,
		Title:     cmd.Title,
		Content:   cmd.Content,
		UpdatedAt: cmd.UpdatedAt.UnixMilli(),
	}
}
