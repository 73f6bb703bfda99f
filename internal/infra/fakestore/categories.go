package fakestore

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finpilot/client/internal/domain/entity"
)

var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// --- Categories ---

func (s *Server) listCategories(ctx *gin.Context) {
	var models []CategoryModel
	if err := s.db.Order("name").Find(&models).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list categories"})
		return
	}

	responses := make([]map[string]any, 0, len(models))
	for i := range models {
		responses = append(responses, models[i].toResponse())
	}
	ctx.JSON(http.StatusOK, responses)
}

type createCategoryBody struct {
	Name     string `json:"name" binding:"required"`
	ColorHex string `json:"colorHex"`
	Type     string `json:"type"`
}

func (s *Server) createCategory(ctx *gin.Context) {
	var body createCategoryBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "category name is required"})
		return
	}

	color := body.ColorHex
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	if !hexColorRegex.MatchString(color) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "colorHex must be a valid hex color"})
		return
	}

	var count int64
	s.db.Model(&CategoryModel{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "a category with this name already exists"})
		return
	}

	model := CategoryModel{
		ID:       uuid.NewString(),
		Name:     name,
		ColorHex: color,
		Type:     body.Type,
	}
	if err := s.db.Create(&model).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create category"})
		return
	}
	ctx.JSON(http.StatusCreated, model.toResponse())
}

// --- Rules ---

func (s *Server) listRules(ctx *gin.Context) {
	var models []RuleModel
	if err := s.db.Preload("Category").Order("priority ASC").Find(&models).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list rules"})
		return
	}

	responses := make([]map[string]any, 0, len(models))
	for i := range models {
		responses = append(responses, models[i].toResponse())
	}
	ctx.JSON(http.StatusOK, responses)
}

type ruleBody struct {
	Pattern    string `json:"pattern" binding:"required"`
	MatchType  string `json:"matchType" binding:"required,oneof=CONTAINS REGEX"`
	CategoryID string `json:"categoryId" binding:"required"`
	Priority   int    `json:"priority"`
	Enabled    *bool  `json:"enabled"`
}

func (s *Server) createRule(ctx *gin.Context) {
	var body ruleBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	category, ok := s.loadCategory(ctx, body.CategoryID)
	if !ok {
		return
	}

	enabled := true
	if body.Enabled != nil {
		enabled = *body.Enabled
	}
	priority := body.Priority
	if priority == 0 {
		priority = 100
	}

	model := RuleModel{
		ID:         uuid.NewString(),
		Pattern:    body.Pattern,
		MatchType:  body.MatchType,
		CategoryID: category.ID,
		Priority:   priority,
		Enabled:    enabled,
	}
	if err := s.db.Create(&model).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create rule"})
		return
	}

	model.Category = category
	ctx.JSON(http.StatusCreated, model.toResponse())
}

func (s *Server) updateRule(ctx *gin.Context) {
	var model RuleModel
	if err := s.db.First(&model, "id = ?", ctx.Param("id")).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "rule not found"})
		return
	}

	var body ruleBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	category, ok := s.loadCategory(ctx, body.CategoryID)
	if !ok {
		return
	}

	model.Pattern = body.Pattern
	model.MatchType = body.MatchType
	model.CategoryID = category.ID
	model.Priority = body.Priority
	if body.Enabled != nil {
		model.Enabled = *body.Enabled
	}

	if err := s.db.Save(&model).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update rule"})
		return
	}

	model.Category = category
	ctx.JSON(http.StatusOK, model.toResponse())
}

func (s *Server) deleteRule(ctx *gin.Context) {
	result := s.db.Delete(&RuleModel{}, "id = ?", ctx.Param("id"))
	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete rule"})
		return
	}
	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "rule not found"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

type testRuleBody struct {
	Merchant string `json:"merchant" binding:"required"`
}

func (s *Server) testRule(ctx *gin.Context) {
	var body testRuleBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	matched := s.applyRules(body.Merchant)
	if matched == nil {
		ctx.JSON(http.StatusOK, gin.H{"matched": false})
		return
	}

	response := gin.H{
		"matched":    true,
		"ruleId":     matched.ID,
		"categoryId": matched.CategoryID,
	}
	var category CategoryModel
	if err := s.db.First(&category, "id = ?", matched.CategoryID).Error; err == nil {
		response["categoryName"] = category.Name
	}
	ctx.JSON(http.StatusOK, response)
}
