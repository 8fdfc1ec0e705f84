package handler

import (
	"net/http"

	"importradar/internal/dto"
	"importradar/internal/service"

	"github.com/gin-gonic/gin"
)

type MarketDataHandler struct{ svc service.MarketDataService }

func NewMarketDataHandler(svc service.MarketDataService) *MarketDataHandler {
	return &MarketDataHandler{svc: svc}
}

// Get godoc
// @Summary      Dados de mercado do produto
// @Description  404 enquanto nenhum dado foi registrado — o cliente trata como "sem dados ainda".
// @Tags         market-data
// @Produce      json
// @Param        id path int true "ID do produto"
// @Success      200 {object} dto.MarketDataResponse
// @Failure      404 {object} apierror.APIError
// @Router       /products/{id}/market-data [get]
func (h *MarketDataHandler) Get(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Upsert godoc
// @Summary      Registrar dados de mercado
// @Description  Insere ou substitui integralmente a linha de sinais do produto (última escrita vence).
// @Tags         market-data
// @Accept       json
// @Produce      json
// @Param        id   path int                         true "ID do produto"
// @Param        body body dto.UpsertMarketDataRequest true "Sinais de mercado"
// @Success      200  {object} dto.MarketDataResponse
// @Failure      404  {object} apierror.APIError
// @Router       /products/{id}/market-data [post]
func (h *MarketDataHandler) Upsert(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req dto.UpsertMarketDataRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Upsert(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
