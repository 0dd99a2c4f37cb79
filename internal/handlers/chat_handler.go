package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/httpresp"
	"github.com/BruksfildServices01/plant-decor/internal/middleware"
	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/store"
)

var ErrNotSessionOwner = httperr.ErrForbidden("not_session_owner")

type ChatHandler struct {
	chats *store.ChatStore
}

func NewChatHandler(chats *store.ChatStore) *ChatHandler {
	return &ChatHandler{chats: chats}
}

type StartChatRequest struct {
	CustomerEmail string `json:"customer_email"`
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *ChatHandler) Start(c *gin.Context) {
	var req StartChatRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid chat data.")
			return
		}
	}

	sess, err := h.chats.GetOrCreateSession(
		c.Request.Context(),
		middleware.UserID(c),
		middleware.UserName(c),
		req.CustomerEmail,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, sess)
}

func (h *ChatHandler) Current(c *gin.Context) {
	sess, err := h.chats.GetOpenSession(middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, sess)
}

func (h *ChatHandler) CustomerMessage(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "message is required.")
		return
	}
	if !h.own(c) {
		return
	}

	name := middleware.UserName(c)
	if name == "" {
		name = "Customer"
	}
	sess, err := h.chats.AddCustomerMessage(c.Request.Context(), c.Param("id"), name, req.Message)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, sess)
}

func (h *ChatHandler) RequestHuman(c *gin.Context) {
	if !h.own(c) {
		return
	}
	sess, err := h.chats.RequestHumanSupport(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, sess)
}

// ======================================================
// SUPPORT STAFF
// ======================================================

func (h *ChatHandler) Waiting(c *gin.Context) {
	httpresp.List(c, h.chats.GetWaitingSessions())
}

func (h *ChatHandler) Active(c *gin.Context) {
	httpresp.List(c, h.chats.GetActiveSessions())
}

func (h *ChatHandler) Closed(c *gin.Context) {
	httpresp.List(c, h.chats.GetClosedSessions())
}

func (h *ChatHandler) Get(c *gin.Context) {
	sess, err := h.chats.GetSession(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, sess)
}

func (h *ChatHandler) Join(c *gin.Context) {
	sess, err := h.chats.JoinSession(
		c.Request.Context(),
		c.Param("id"),
		middleware.UserID(c),
		middleware.UserName(c),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, sess)
}

func (h *ChatHandler) SupportMessage(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "message is required.")
		return
	}

	sess, err := h.chats.AddMessage(c.Request.Context(), c.Param("id"), store.NewChatMessage{
		Sender:     models.SenderSupport,
		SenderName: middleware.UserName(c),
		Message:    req.Message,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, sess)
}

func (h *ChatHandler) Close(c *gin.Context) {
	sess, err := h.chats.CloseSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, sess)
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (h *ChatHandler) own(c *gin.Context) bool {
	sess, err := h.chats.GetSession(c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return false
	}
	if sess.CustomerID != middleware.UserID(c) {
		httperr.Respond(c, ErrNotSessionOwner)
		return false
	}
	return true
}
