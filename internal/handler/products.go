package handler

import (
	"net/http"

	"importradar/internal/apierror"
	"importradar/internal/dto"
	"importradar/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct {
	svc    service.ProductService
	triage service.TriageService
}

func NewProductsHandler(svc service.ProductService, triage service.TriageService) *ProductsHandler {
	return &ProductsHandler{svc: svc, triage: triage}
}

// Create godoc
// @Summary      Cadastrar produto
// @Description  Cadastra um produto candidato a importação. Custos podem ficar em branco e ser preenchidos depois.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateProductRequest true "Dados do produto"
// @Success      201  {object} dto.ProductResponse
// @Failure      400  {object} apierror.APIError
// @Router       /products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      Listar produtos
// @Tags         products
// @Produce      json
// @Success      200 {array} dto.ProductResponse
// @Router       /products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Triage godoc
// @Summary      Fila de triagem priorizada
// @Description  Classifica cada produto pelo próximo passo pendente e ordena do mais próximo de decidir ao mais bloqueado.
// @Tags         products
// @Produce      json
// @Param        limit          query int  false "Máximo de itens (1-500)" default(50)
// @Param        include_score  query bool false "Calcula o score de cada item"
// @Param        include_notes  query bool false "Inclui as notas do score"
// @Success      200 {array} dto.TriageItem
// @Router       /products/triage [get]
func (h *ProductsHandler) Triage(c *gin.Context) {
	var filter dto.TriageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("limit deve estar entre 1 e 500"))
		return
	}
	resp, err := h.triage.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID godoc
// @Summary      Buscar produto por ID
// @Tags         products
// @Produce      json
// @Param        id path int true "ID do produto"
// @Success      200 {object} dto.ProductResponse
// @Failure      404 {object} apierror.APIError
// @Router       /products/{id} [get]
func (h *ProductsHandler) GetByID(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Atualizar produto
// @Description  Atualização parcial: apenas os campos presentes no corpo são alterados.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id   path int                      true "ID do produto"
// @Param        body body dto.UpdateProductRequest true "Campos a atualizar"
// @Success      200  {object} dto.ProductResponse
// @Failure      404  {object} apierror.APIError
// @Router       /products/{id} [put]
func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Remover produto
// @Description  Remoção definitiva: apaga também dados de mercado, simulações e decisões do produto.
// @Tags         products
// @Param        id path int true "ID do produto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /products/{id} [delete]
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
