package ops

import (
	"context"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/themeparkify/bot-telegram/service/tracker"
	"github.com/themeparkify/bot-telegram/storage"
	"net/http"
	"time"
)

type Handler interface {
	Healthz(ctx *gin.Context)
	Poll(ctx *gin.Context)
}

type handler struct {
	stor    storage.Storage
	tracker tracker.Tracker
}

const PathHealthz = "/healthz"
const PathPoll = "/v1/poll"
const pingTimeout = 5 * time.Second

func NewHandler(stor storage.Storage, t tracker.Tracker) Handler {
	return handler{
		stor:    stor,
		tracker: t,
	}
}

func (h handler) Healthz(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), pingTimeout)
	defer cancel()
	err := h.stor.Ping(pingCtx)
	if err != nil {
		ctx.String(http.StatusServiceUnavailable, fmt.Sprintf("storage unavailable: %s", err))
		return
	}
	ctx.String(http.StatusOK, "ok")
	return
}

// Poll runs a single poll cycle out of schedule and responds with its report.
func (h handler) Poll(ctx *gin.Context) {
	r, err := h.tracker.Poll(ctx.Request.Context())
	if err != nil {
		ctx.String(http.StatusInternalServerError, fmt.Sprintf("poll cycle %s failed: %s", r.CycleId, err))
		return
	}
	ctx.JSON(http.StatusOK, r)
	return
}

func NewRouter(h Handler) (r *gin.Engine) {
	r = gin.New()
	r.Use(gin.Recovery())
	r.GET(PathHealthz, h.Healthz)
	r.POST(PathPoll, h.Poll)
	return
}
