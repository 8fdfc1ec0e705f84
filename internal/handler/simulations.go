package handler

import (
	"net/http"

	"importradar/internal/dto"
	"importradar/internal/service"

	"github.com/gin-gonic/gin"
)

type SimulationsHandler struct{ svc service.SimulationService }

func NewSimulationsHandler(svc service.SimulationService) *SimulationsHandler {
	return &SimulationsHandler{svc: svc}
}

// Simulate godoc
// @Summary      Simular custo de importação
// @Description  Roda a regra do ×2 (impostos ≈ 100% do valor aduaneiro) e grava o resultado no histórico do produto.
// @Tags         simulations
// @Accept       json
// @Produce      json
// @Param        id   path int                 true "ID do produto"
// @Param        body body dto.SimulateRequest true "Parâmetros da simulação"
// @Success      201  {object} dto.SimulationResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /products/{id}/simulate [post]
func (h *SimulationsHandler) Simulate(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req dto.SimulateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Simulate(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Last godoc
// @Summary      Última simulação do produto
// @Description  404 enquanto o produto não tem simulações — estado vazio válido para o cliente.
// @Tags         simulations
// @Produce      json
// @Param        id path int true "ID do produto"
// @Success      200 {object} dto.SimulationResponse
// @Failure      404 {object} apierror.APIError
// @Router       /products/{id}/simulations/last [get]
func (h *SimulationsHandler) Last(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Last(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
