package handlers

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TaxonomyHandler: категории, подкатегории и производители.
type TaxonomyHandler struct {
	taxonomy service.TaxonomyService
	log      *zap.Logger
}

func NewTaxonomyHandler(taxonomy service.TaxonomyService, log *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy, log: log}
}

// ListCategories godoc
// @Summary Категории
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	items, err := h.taxonomy.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetCategory godoc
// @Summary Категория по ID
// @Tags categories
// @Produce json
// @Param id path int true "ID категории"
// @Success 200 {object} models.Category
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /categories/{id} [get]
func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cat, err := h.taxonomy.GetCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// CreateCategory godoc
// @Summary Создание категории
// @Security BearerAuth
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CategoryRequest true "Категория"
// @Success 201 {object} models.Category
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /categories [post]
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	cat, err := h.taxonomy.CreateCategory(c.Request.Context(), req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// UpdateCategory godoc
// @Summary Изменение категории
// @Security BearerAuth
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "ID категории"
// @Param category body dto.CategoryRequest true "Категория"
// @Success 200 {object} models.Category
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /categories/{id} [put]
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	cat, err := h.taxonomy.UpdateCategory(c.Request.Context(), id, req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DeleteCategory godoc
// @Summary Удаление категории
// @Security BearerAuth
// @Tags categories
// @Param id path int true "ID категории"
// @Success 200 {object} dto.SuccessResponse
// @Router /categories/{id} [delete]
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.taxonomy.DeleteCategory(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("category deleted"))
}

// ListSubcategories godoc
// @Summary Подкатегории
// @Tags subcategories
// @Produce json
// @Param category_id query int false "Фильтр по категории"
// @Success 200 {array} models.Subcategory
// @Router /subcategories [get]
func (h *TaxonomyHandler) ListSubcategories(c *gin.Context) {
	catID, ok := queryID(c, "category_id")
	if !ok {
		return
	}
	items, err := h.taxonomy.ListSubcategories(c.Request.Context(), catID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetSubcategory godoc
// @Summary Подкатегория по ID
// @Tags subcategories
// @Produce json
// @Param id path int true "ID подкатегории"
// @Success 200 {object} models.Subcategory
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /subcategories/{id} [get]
func (h *TaxonomyHandler) GetSubcategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sc, err := h.taxonomy.GetSubcategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

// CreateSubcategory godoc
// @Summary Создание подкатегории
// @Security BearerAuth
// @Tags subcategories
// @Accept json
// @Produce json
// @Param subcategory body dto.SubcategoryRequest true "Подкатегория"
// @Success 201 {object} models.Subcategory
// @Failure 404 {object} dto.NotFoundErrorResponse "Категория не найдена"
// @Router /subcategories [post]
func (h *TaxonomyHandler) CreateSubcategory(c *gin.Context) {
	var req dto.SubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	sc, err := h.taxonomy.CreateSubcategory(c.Request.Context(), req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, sc)
}

// UpdateSubcategory godoc
// @Summary Изменение подкатегории
// @Security BearerAuth
// @Tags subcategories
// @Accept json
// @Produce json
// @Param id path int true "ID подкатегории"
// @Param subcategory body dto.SubcategoryRequest true "Подкатегория"
// @Success 200 {object} models.Subcategory
// @Router /subcategories/{id} [put]
func (h *TaxonomyHandler) UpdateSubcategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	sc, err := h.taxonomy.UpdateSubcategory(c.Request.Context(), id, req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

// DeleteSubcategory godoc
// @Summary Удаление подкатегории
// @Security BearerAuth
// @Tags subcategories
// @Param id path int true "ID подкатегории"
// @Success 200 {object} dto.SuccessResponse
// @Router /subcategories/{id} [delete]
func (h *TaxonomyHandler) DeleteSubcategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.taxonomy.DeleteSubcategory(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("subcategory deleted"))
}

// ListCompanies godoc
// @Summary Производители
// @Tags companies
// @Produce json
// @Success 200 {array} models.Company
// @Router /companies [get]
func (h *TaxonomyHandler) ListCompanies(c *gin.Context) {
	items, err := h.taxonomy.ListCompanies(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetCompany godoc
// @Summary Производитель по ID
// @Tags companies
// @Produce json
// @Param id path int true "ID производителя"
// @Success 200 {object} models.Company
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /companies/{id} [get]
func (h *TaxonomyHandler) GetCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	co, err := h.taxonomy.GetCompany(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

// CreateCompany godoc
// @Summary Создание производителя
// @Security BearerAuth
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CompanyRequest true "Производитель"
// @Success 201 {object} models.Company
// @Router /companies [post]
func (h *TaxonomyHandler) CreateCompany(c *gin.Context) {
	var req dto.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	co, err := h.taxonomy.CreateCompany(c.Request.Context(), req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, co)
}

// UpdateCompany godoc
// @Summary Изменение производителя
// @Security BearerAuth
// @Tags companies
// @Accept json
// @Produce json
// @Param id path int true "ID производителя"
// @Param company body dto.CompanyRequest true "Производитель"
// @Success 200 {object} models.Company
// @Router /companies/{id} [put]
func (h *TaxonomyHandler) UpdateCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	co, err := h.taxonomy.UpdateCompany(c.Request.Context(), id, req.ToInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

// DeleteCompany godoc
// @Summary Удаление производителя
// @Security BearerAuth
// @Tags companies
// @Param id path int true "ID производителя"
// @Success 200 {object} dto.SuccessResponse
// @Router /companies/{id} [delete]
func (h *TaxonomyHandler) DeleteCompany(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.taxonomy.DeleteCompany(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("company deleted"))
}
