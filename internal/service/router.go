package service

import (
	"log/slog"
	"net/http"
	"strconv"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"gitlab.com/dirk.krummacker/contacts-app/internal/errs"
	pkgmodel "gitlab.com/dirk.krummacker/contacts-app/pkg/model"
)

// RouterOptions control how the REST API router is set up.
type RouterOptions struct {
	// BasePath is the path under which the contact endpoints are mounted.
	BasePath string

	// RequestLogging writes one log line per request.
	RequestLogging bool

	// Sentry reports panics and server errors to Sentry. The Sentry client must have been
	// initialized by the caller.
	Sentry bool

	Logger *slog.Logger
}

type handlers struct {
	svc     *Service
	metrics *Metrics
	logger  *slog.Logger
}

// SetupHttpRouter initializes the REST API router and registers all endpoints. The health check
// and the Prometheus metrics are served at the root of the router, independent of the base path.
func SetupHttpRouter(svc *Service, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = svc.logger
	}
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	h := &handlers{svc: svc, metrics: NewMetrics(), logger: logger}

	router := gin.New()
	router.Use(requestID())
	if opts.RequestLogging {
		router.Use(requestLogger(logger))
	} else {
		logger.Info("Turning off HTTP request logging.")
	}
	router.Use(gin.Recovery())
	if opts.Sentry {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(h.metrics.middleware())

	router.GET("/healthz", h.healthCheck)
	router.GET("/metrics", h.metrics.handler())

	contacts := router.Group(opts.BasePath)
	contacts.GET("/", h.findContacts)
	contacts.POST("/", h.createContact)
	contacts.GET("/:id/", h.findContactByID)
	contacts.PUT("/:id/", h.updateContactByID)
	contacts.DELETE("/:id/", h.deleteContactByID)
	return router
}

// findContacts responds with the list of all contacts as JSON, ordered by id.
//
// REST API call:
//
//	> curl "http://localhost:8080/"
func (h *handlers) findContacts(c *gin.Context) {
	contacts, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// createContact inserts the contact specified in the request's JSON into the database. It responds
// with the full contact data including the newly assigned id. Name, email and phone are required
// and must not be empty.
//
// Example REST API call:
//
//	> curl http://localhost:8080/ --request "POST" --include --header "Content-Type: application/json" --data '{"name": "Ann", "email": "a@x.com", "phone": "123"}'
func (h *handlers) createContact(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.respondError(c, errs.Malformed(err))
		return
	}
	contact, err := h.svc.Create(c.Request.Context(), body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.contactCreated()
	c.JSON(http.StatusCreated, contact)
}

// findContactByID locates the contact whose ID value matches the id parameter of the request URL,
// then returns that contact as a response.
//
// Example REST API call:
//
//	> curl http://localhost:8080/56/
func (h *handlers) findContactByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	contact, err := h.svc.Find(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// updateContactByID updates the contact whose ID value matches the id parameter of the request
// URL with the values specified in the JSON (and only those), and finally responds with the new
// version of the contact.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/56/ --request "PUT" --include --header "Content-Type: application/json" --data '{"phone": "81970"}'
//	> curl http://localhost:8080/56/ --request "PUT" --include --header "Content-Type: application/json" --data '{"email": "ann@example.com"}'
func (h *handlers) updateContactByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		h.respondError(c, errs.Malformed(err))
		return
	}
	contact, err := h.svc.Update(c.Request.Context(), id, body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.contactUpdated()
	c.JSON(http.StatusOK, contact)
}

// deleteContactByID deletes the contact whose ID value matches the id parameter of the request URL
// from the database. The confirmation message is handed to the renderer, but a 204 response never
// carries a body on the wire.
//
// Example REST API call:
//
//	> curl http://localhost:8080/56/ --request "DELETE"
func (h *handlers) deleteContactByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if _, err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.contactDeleted()
	c.JSON(http.StatusNoContent, pkgmodel.MessageResponse{Message: "Contact deleted successfully"})
}

// healthCheck responds with OK if the store can be reached.
func (h *handlers) healthCheck(c *gin.Context) {
	if err := h.svc.Ping(c.Request.Context()); err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, pkgmodel.ErrorResponse{Error: errs.ErrorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusText(http.StatusOK)})
}

// parseID reads the id parameter of the request URL. Only unsigned decimal numbers are accepted;
// anything else is answered with NOT FOUND without reaching out to the store.
func (h *handlers) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, pkgmodel.ErrorResponse{Error: "invalid id parameter"})
		return 0, false
	}
	return int64(id), true
}

// respondError maps an application error to its HTTP status and writes the error body.
func (h *handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errs.ErrorCode(err) {
	case errs.EMALFORMED, errs.EINVALID:
		status = http.StatusBadRequest
	case errs.ENOTFOUND:
		status = http.StatusNotFound
	}

	message := errs.ErrorMessage(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request.Context(), "request failed",
			"err", err, "request_id", c.GetString(keyRequestID))
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	} else {
		h.logger.DebugContext(c.Request.Context(), "request rejected", "error", message)
	}
	c.AbortWithStatusJSON(status, pkgmodel.ErrorResponse{Error: message})
}
