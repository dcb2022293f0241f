package packages

import (
	"errors"
	"net/http"
	"strconv"

	"roomly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	CreatePackage(c *gin.Context)
	GetPackage(c *gin.Context)
	ListPackages(c *gin.Context)
	UpdatePackage(c *gin.Context)
	DeletePackage(c *gin.Context)

	CreateService(c *gin.Context)
	ListServices(c *gin.Context)
	UpdateService(c *gin.Context)
	DeleteService(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func packageErrStatus(err error) int {
	switch {
	case errors.Is(err, ErrPackageNotFound), errors.Is(err, ErrServiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMalformedItem):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (ctrl *controller) CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	pkg, err := ctrl.service.CreatePackage(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", packageErrStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Package created successfully", pkg, nil)
}

func (ctrl *controller) GetPackage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid package id", nil, err.Error())
		return
	}

	pkg, err := ctrl.service.GetPackage(c.Request.Context(), uint(id))
	if err != nil {
		response.RespondJSON(c, "error", packageErrStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package retrieved successfully", pkg, nil)
}

func (ctrl *controller) ListPackages(c *gin.Context) {
	// Customers only see active packages; admins may pass all=true
	activeOnly := c.Query("all") != "true"

	pkgs, err := ctrl.service.ListPackages(c.Request.Context(), activeOnly)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list packages", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Packages retrieved successfully", pkgs, nil)
}

func (ctrl *controller) UpdatePackage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid package id", nil, err.Error())
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	pkg, err := ctrl.service.UpdatePackage(c.Request.Context(), uint(id), req)
	if err != nil {
		response.RespondJSON(c, "error", packageErrStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package updated successfully", pkg, nil)
}

func (ctrl *controller) DeletePackage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid package id", nil, err.Error())
		return
	}

	if err := ctrl.service.DeletePackage(c.Request.Context(), uint(id)); err != nil {
		response.RespondJSON(c, "error", packageErrStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package deleted successfully", nil, nil)
}

func (ctrl *controller) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	svc, err := ctrl.service.CreateService(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create service", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Service created successfully", svc, nil)
}

func (ctrl *controller) ListServices(c *gin.Context) {
	svcs, err := ctrl.service.ListServices(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list services", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Services retrieved successfully", svcs, nil)
}

func (ctrl *controller) UpdateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid service id", nil, err.Error())
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	svc, err := ctrl.service.UpdateService(c.Request.Context(), uint(id), req)
	if err != nil {
		response.RespondJSON(c, "error", packageErrStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Service updated successfully", svc, nil)
}

func (ctrl *controller) DeleteService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid service id", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteService(c.Request.Context(), uint(id)); err != nil {
		response.RespondJSON(c, "error", packageErrStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Service deleted successfully", nil, nil)
}
