package http

import (
	"net/http"

	"github.com/MKhiriev/go-web-host/internal/logger"
	"github.com/MKhiriev/go-web-host/internal/service"
	"github.com/MKhiriev/go-web-host/internal/utils"
)

type healthResponse struct {
	Status  string               `json:"status"`
	Version string               `json:"version"`
	Config  service.ConfigStatus `json:"config"`
}

func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := healthResponse{
		Status:  "ok",
		Version: h.services.AppInfoService.GetAppVersion(ctx),
		Config:  h.services.ConfigService.Status(ctx),
	}

	if _, err := utils.WriteJSON(w, response, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing health response")
	}
}
