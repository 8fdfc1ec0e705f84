package handler

import (
	"net/http"

	"importradar/internal/service"

	"github.com/gin-gonic/gin"
)

type EvaluationHandler struct{ svc service.EvaluationService }

func NewEvaluationHandler(svc service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{svc: svc}
}

// Evaluate godoc
// @Summary      Avaliação consolidada do produto
// @Description  Painel único: completude do cadastro, cenários conservador/base/otimista, pilares, bloqueios e a recomendação calculada.
// @Tags         evaluation
// @Produce      json
// @Param        id path int true "ID do produto"
// @Success      200 {object} dto.EvaluationResponse
// @Failure      404 {object} apierror.APIError
// @Router       /products/{id}/evaluation [get]
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Evaluate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
