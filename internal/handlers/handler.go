package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aavkar_pos/internal/backend"
	"aavkar_pos/internal/catalog"
	"aavkar_pos/internal/images"
	"aavkar_pos/internal/leads"
	"aavkar_pos/internal/orders"
	"aavkar_pos/internal/session"
)

// Deps is everything the HTTP layer talks to.
type Deps struct {
	Catalog     *catalog.Service
	Orders      *orders.Client
	Gateway     *orders.Gateway
	Leads       *leads.Client
	Sessions    *session.Store
	Images      images.Resolver
	TrackingURL string
	Log         *zap.Logger
}

type Handler struct {
	catalog     *catalog.Service
	orders      *orders.Client
	gateway     *orders.Gateway
	leads       *leads.Client
	sessions    *session.Store
	images      images.Resolver
	trackingURL string
	log         *zap.Logger
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	img := d.Images
	if img == nil {
		img = images.BaseURL{}
	}
	return &Handler{
		catalog:     d.Catalog,
		orders:      d.Orders,
		gateway:     d.Gateway,
		leads:       d.Leads,
		sessions:    d.Sessions,
		images:      img,
		trackingURL: d.TrackingURL,
		log:         log.Named("handlers"),
	}
}

// Health answers the load balancer probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// upstreamStatus maps a backend failure onto the status returned to the
// dashboard: client errors pass through, anything else is a bad gateway.
func upstreamStatus(err error) int {
	var be *backend.Error
	if errors.As(err, &be) && be.Status >= 400 && be.Status < 500 {
		return be.Status
	}
	return http.StatusBadGateway
}

// fail answers with the backend's own message when it sent one.
func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	status := upstreamStatus(err)
	if status >= 500 {
		h.log.Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		h.log.Debug(fallback, zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": backend.MessageOr(err, fallback)})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// queryBool is nil when the parameter is absent or not a boolean.
func queryBool(c *gin.Context, key string) *bool {
	b, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return nil
	}
	return &b
}
