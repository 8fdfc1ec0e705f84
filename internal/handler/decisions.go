package handler

import (
	"net/http"

	"importradar/internal/dto"
	"importradar/internal/service"

	"github.com/gin-gonic/gin"
)

type DecisionsHandler struct{ svc service.DecisionService }

func NewDecisionsHandler(svc service.DecisionService) *DecisionsHandler {
	return &DecisionsHandler{svc: svc}
}

// Create godoc
// @Summary      Registrar decisão humana
// @Description  Anexa uma entrada ao ledger do produto (approve_test, approve_import, reject ou needs_data). Entradas nunca são editadas.
// @Tags         decisions
// @Accept       json
// @Produce      json
// @Param        id   path int                       true "ID do produto"
// @Param        body body dto.CreateDecisionRequest true "Decisão e justificativa"
// @Success      201  {object} dto.DecisionResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /products/{id}/decisions [post]
func (h *DecisionsHandler) Create(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req dto.CreateDecisionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      Histórico de decisões do produto
// @Tags         decisions
// @Produce      json
// @Param        id path int true "ID do produto"
// @Success      200 {array} dto.DecisionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /products/{id}/decisions [get]
func (h *DecisionsHandler) List(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
