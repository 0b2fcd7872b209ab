// Service-catalog HTTP handlers.
//
// This file exposes the admin endpoints for the catalog of services tickets
// are issued against:
//   - POST   /services          (add)
//   - GET    /services          (list)
//   - DELETE /services/{name}   (remove)
//
// Catalog mutation is an administrative concern; the queue engine only ever
// increments request counters.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-turnero-backend/internal/domain"
	"github.com/tbourn/go-turnero-backend/internal/services"
)

// AddServiceRequest is the JSON payload for creating a catalog entry.
type AddServiceRequest struct {
	// Name uniquely identifies the service (1–128 chars).
	Name string `json:"name" binding:"required,min=1,max=128" example:"passport renewal"`
}

// ListServicesResponse wraps the full catalog.
type ListServicesResponse struct {
	Services []domain.Service `json:"services"`
}

// AddService godoc
// @ID          addService
// @Summary     Add a catalog service
// @Tags        Services
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.AddServiceRequest  true  "Service payload"
//
// @Success     201  {object}  domain.Service
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Service already exists"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /services [post]
func (h *Handlers) AddService(c *gin.Context) {
	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required (1–128 chars)")
		return
	}

	svc, err := h.catalogSvc.Add(c.Request.Context(), req.Name)
	if err != nil {
		switch err {
		case services.ErrServiceExists:
			fail(c, http.StatusConflict, ErrCodeConflict, "service already exists")
		case services.ErrEmptyServiceName:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not add service")
		}
		return
	}
	ok(c, http.StatusCreated, svc)
}

// ListServices godoc
// @ID          listServices
// @Summary     List catalog services
// @Tags        Services
// @Produce     json
//
// @Success     200  {object}  handlers.ListServicesResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /services [get]
func (h *Handlers) ListServices(c *gin.Context) {
	items, err := h.catalogSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list services")
		return
	}
	ok(c, http.StatusOK, ListServicesResponse{Services: items})
}

// RemoveService godoc
// @ID          removeService
// @Summary     Remove a catalog service
// @Description Deletes a catalog entry. Already-issued tickets keep the name.
// @Tags        Services
// @Produce     json
//
// @Param       name  path  string  true  "Service name"  example(passport renewal)
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Service not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /services/{name} [delete]
func (h *Handlers) RemoveService(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	found, err := h.catalogSvc.Remove(c.Request.Context(), name)
	if err != nil {
		if err == services.ErrEmptyServiceName {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not remove service")
		return
	}
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "service not found")
		return
	}
	noContent(c)
}
