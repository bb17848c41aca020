package handlers

import (
	"net/http"

	response "planejao/internal/adapter/http/dto/response"
	"planejao/internal/infrastructure/logging"
	"planejao/internal/usecase"
	"planejao/pkg"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	usecase usecase.IReportUseCase
}

func NewReportHandler(uc usecase.IReportUseCase) *ReportHandler {
	return &ReportHandler{usecase: uc}
}

// GetReport godoc
// @Summary  Portfolio report
// @Tags     projects
// @Produce  json
// @Success  200  {object}  response.ReportResponse
// @Router   /projects/report [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.usecase.Generate(c.Request.Context())
	if err != nil {
		logging.Logger.Errorf("[report][handler] generate failed err=%v", err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromReport(report))
}
