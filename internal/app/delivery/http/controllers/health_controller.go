package controllers

import (
	"net/http"
	"patient-chart-service/internal/app/config"
	"patient-chart-service/internal/pkg/constvars"
	"patient-chart-service/internal/pkg/utils"
)

type HealthController struct {
	InternalConfig *config.InternalConfig
	ActiveViews    func() int
}

type healthStatus struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
	ActiveViews int    `json:"active_views"`
}

func NewHealthController(internalConfig *config.InternalConfig, activeViews func() int) *HealthController {
	return &HealthController{
		InternalConfig: internalConfig,
		ActiveViews:    activeViews,
	}
}

func (ctrl *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{
		Version:     ctrl.InternalConfig.App.Version,
		Environment: ctrl.InternalConfig.App.Env,
	}
	if ctrl.ActiveViews != nil {
		status.ActiveViews = ctrl.ActiveViews()
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, status)
}
