package handler

import (
	"net/http"

	"importradar/internal/service"

	"github.com/gin-gonic/gin"
)

type ScoresHandler struct{ svc service.ScoringService }

func NewScoresHandler(svc service.ScoringService) *ScoresHandler {
	return &ScoresHandler{svc: svc}
}

// Score godoc
// @Summary      Score de viabilidade do produto
// @Description  Combina demanda, concorrência, margem conservadora e risco em um score 0-100. Exige ao menos uma simulação (422 sem ela).
// @Tags         scores
// @Produce      json
// @Param        id path int true "ID do produto"
// @Success      200 {object} dto.ScoreResponse
// @Failure      404 {object} apierror.APIError
// @Failure      422 {object} apierror.APIError
// @Router       /products/{id}/score [get]
func (h *ScoresHandler) Score(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Score(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ranking godoc
// @Summary      Ranking de produtos por score
// @Description  Lista apenas produtos com score computável, do maior para o menor.
// @Tags         scores
// @Produce      json
// @Success      200 {array} dto.RankingItem
// @Router       /products/scores/ranking [get]
func (h *ScoresHandler) Ranking(c *gin.Context) {
	resp, err := h.svc.Ranking(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
