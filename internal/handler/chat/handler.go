package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/render"
	chatService "github.com/zhouzirui/z-tavern/chatwidget/internal/service/chat"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/service/widget"
	"github.com/zhouzirui/z-tavern/chatwidget/pkg/utils"
)

// Handler 聊天组件会话的HTTP处理器
type Handler struct {
	sessions *chatService.Service
	upgrader websocket.Upgrader
}

// New 创建聊天组件处理器
func New(sessions *chatService.Service) *Handler {
	return &Handler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册聊天组件相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/widget/sessions", func(r chi.Router) {
		r.Post("/", h.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.handleGetSession)
			r.Delete("/", h.handleCloseSession)
			r.Put("/input", h.handleSetInput)
			r.Post("/submit", h.handleSubmit)
			r.Get("/events", h.handleEvents)
			r.Get("/ws", h.handleWebSocket)
		})
	})
}

// SessionView is the rendered state of one widget.
type SessionView struct {
	ID      string        `json:"id"`
	State   string        `json:"state"`
	Input   string        `json:"input"`
	Lines   []render.Line `json:"lines"`
	Outcome string        `json:"outcome,omitempty"`
}

func viewOf(w *widget.Widget) SessionView {
	return SessionView{
		ID:    w.Session().ID,
		State: w.State().String(),
		Input: w.Input(),
		Lines: render.Project(w.Messages()),
	}
}

// handleCreateSession 创建会话
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, session)
}

// handleGetSession 返回会话的渲染视图
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	chatWidget, ok := h.lookup(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, viewOf(chatWidget))
}

// handleCloseSession 销毁会话
func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.CloseSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type inputPayload struct {
	Input *string `json:"input"`
}

// handleSetInput 更新待发送的输入内容
func (h *Handler) handleSetInput(w http.ResponseWriter, r *http.Request) {
	chatWidget, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var payload inputPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Input == nil {
		utils.RespondError(w, http.StatusBadRequest, "input is required")
		return
	}

	chatWidget.SetInput(*payload.Input)
	utils.RespondJSON(w, http.StatusOK, viewOf(chatWidget))
}

// handleSubmit 提交输入并等待本轮回复
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	chatWidget, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var payload inputPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The cycle outlives a client that hangs up; the reply still lands in the transcript.
	submitCtx := context.WithoutCancel(r.Context())

	var (
		cycle *widget.Cycle
		err   error
	)
	if payload.Input != nil {
		cycle, err = chatWidget.Submit(submitCtx, *payload.Input)
	} else {
		cycle, err = chatWidget.SubmitInput(submitCtx)
	}
	switch {
	case errors.Is(err, widget.ErrBusy):
		utils.RespondError(w, http.StatusConflict, "a reply is still pending")
		return
	case errors.Is(err, widget.ErrClosed):
		utils.RespondError(w, http.StatusGone, "session closed")
		return
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, "submit failed")
		return
	}

	result, err := cycle.Wait(r.Context())
	if err != nil {
		return
	}

	view := viewOf(chatWidget)
	view.Outcome = result.Outcome.String()
	utils.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*widget.Widget, bool) {
	chatWidget, err := h.sessions.GetWidget(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return chatWidget, true
}
