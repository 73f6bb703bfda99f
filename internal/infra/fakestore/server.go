package fakestore

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finpilot/client/internal/domain/entity"
)

// Server serves the fake record store over HTTP.
type Server struct {
	db     *gorm.DB
	engine *gin.Engine
}

// NewServer creates a fake store with a fresh in-memory database.
func NewServer() (*Server, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.TestMode)
	s := &Server{db: db, engine: gin.New()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for mounting on a listener.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	api := s.engine.Group("/api/v1")
	{
		api.GET("/transactions", s.listTransactions)
		api.POST("/transactions", s.createTransaction)
		api.PATCH("/transactions/:id", s.updateTransaction)
		api.DELETE("/transactions/:id", s.deleteTransaction)
		api.POST("/transactions/sync", s.syncTransactions)

		api.GET("/categories", s.listCategories)
		api.POST("/categories", s.createCategory)

		api.GET("/rules", s.listRules)
		api.POST("/rules", s.createRule)
		api.PUT("/rules/:id", s.updateRule)
		api.DELETE("/rules/:id", s.deleteRule)
		api.POST("/rules/test", s.testRule)
	}
}

// --- Transactions ---

func (s *Server) listTransactions(ctx *gin.Context) {
	var models []TransactionModel
	if err := s.db.Preload("Category").Order("date DESC, id").Find(&models).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list transactions"})
		return
	}

	responses := make([]map[string]any, 0, len(models))
	for i := range models {
		responses = append(responses, models[i].toResponse())
	}
	ctx.JSON(http.StatusOK, responses)
}

type createTransactionBody struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  *string         `json:"categoryId"`
}

func (s *Server) createTransaction(ctx *gin.Context) {
	var body createTransactionBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "date must be YYYY-MM-DD"})
		return
	}

	description := entity.NormalizeMerchant(body.Description)
	force := ctx.Query("force") == "true"
	if !force {
		if existing := s.findDuplicate(date, body.Amount, description, ""); existing != nil {
			s.writeConflict(ctx, existing, date, body.Amount, body.Description)
			return
		}
	}

	model := TransactionModel{
		ID:          uuid.NewString(),
		Date:        date,
		Description: body.Description,
		Amount:      body.Amount,
	}

	if body.CategoryID != nil {
		category, ok := s.loadCategory(ctx, *body.CategoryID)
		if !ok {
			return
		}
		model.CategoryID = &category.ID
	} else if matched := s.applyRules(body.Description); matched != nil {
		model.CategoryID = &matched.CategoryID
	}

	if err := s.db.Create(&model).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create transaction"})
		return
	}

	s.db.Preload("Category").First(&model, "id = ?", model.ID)
	ctx.JSON(http.StatusCreated, model.toResponse())
}

// updateTransactionBody distinguishes "categoryId absent" from an explicit
// null by keeping presence flags alongside the decoded values.
type updateTransactionBody struct {
	Description *string         `json:"description"`
	CategoryID  json.RawMessage `json:"categoryId"`
}

func (s *Server) updateTransaction(ctx *gin.Context) {
	var model TransactionModel
	if err := s.db.Preload("Category").First(&model, "id = ?", ctx.Param("id")).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "transaction not found"})
		return
	}

	var body updateTransactionBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	if body.Description != nil {
		force := ctx.Query("force") == "true"
		if !force {
			norm := entity.NormalizeMerchant(*body.Description)
			if existing := s.findDuplicate(model.Date, model.Amount, norm, model.ID); existing != nil {
				s.writeConflict(ctx, existing, model.Date, model.Amount, *body.Description)
				return
			}
		}
		model.Description = *body.Description
	}

	// Tri-state category: absent key leaves it alone, explicit null clears,
	// a string sets it.
	if len(body.CategoryID) > 0 {
		if string(body.CategoryID) == "null" {
			model.CategoryID = nil
			model.Category = nil
		} else {
			var categoryID string
			if err := json.Unmarshal(body.CategoryID, &categoryID); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": "categoryId must be a string or null"})
				return
			}
			category, ok := s.loadCategory(ctx, categoryID)
			if !ok {
				return
			}
			model.CategoryID = &category.ID
			model.Category = category
		}
	}

	updates := map[string]any{
		"description": model.Description,
		"category_id": model.CategoryID,
	}
	if err := s.db.Model(&TransactionModel{}).Where("id = ?", model.ID).Updates(updates).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update transaction"})
		return
	}

	s.db.Preload("Category").First(&model, "id = ?", model.ID)
	ctx.JSON(http.StatusOK, model.toResponse())
}

func (s *Server) deleteTransaction(ctx *gin.Context) {
	result := s.db.Delete(&TransactionModel{}, "id = ?", ctx.Param("id"))
	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete transaction"})
		return
	}
	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "transaction not found"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// syncTransactions fakes a provider pull: each call ingests one synthetic
// provider transaction so demo flows have fresh data to show.
func (s *Server) syncTransactions(ctx *gin.Context) {
	model := TransactionModel{
		ID:                 uuid.NewString(),
		PlaidTransactionID: "plaid-" + uuid.NewString()[:8],
		Date:               time.Now().UTC().Truncate(24 * time.Hour),
		Description:        "Synced Merchant",
		Amount:             decimal.NewFromFloat(18.75),
		PlaidCategory:      "FOOD_AND_DRINK",
	}
	if matched := s.applyRules(model.Description); matched != nil {
		model.CategoryID = &matched.CategoryID
	}

	if err := s.db.Create(&model).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "failed to sync"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "COMPLETE", "count": 1})
}

// findDuplicate looks for another record with the same date, amount, and
// normalized description. excludeID skips the record being updated.
func (s *Server) findDuplicate(date time.Time, amount decimal.Decimal, normDescription, excludeID string) *TransactionModel {
	var models []TransactionModel
	query := s.db.Preload("Category").Where("date = ?", date)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil
	}

	for i := range models {
		if models[i].Amount.Equal(amount) && entity.NormalizeMerchant(models[i].Description) == normDescription {
			return &models[i]
		}
	}
	return nil
}

// writeConflict renders the 409 duplicate body the way the real store does.
func (s *Server) writeConflict(ctx *gin.Context, existing *TransactionModel, date time.Time, amount decimal.Decimal, merchant string) {
	existingBody := gin.H{
		"id":       existing.ID,
		"date":     existing.Date.Format("2006-01-02"),
		"amount":   existing.Amount,
		"merchant": existing.Description,
	}
	if existing.Category != nil {
		existingBody["categoryName"] = existing.Category.Name
	}

	ctx.JSON(http.StatusConflict, gin.H{
		"code":   "DUPLICATE",
		"detail": "A matching transaction already exists.",
		"existing": existingBody,
		"candidate": gin.H{
			"date":     date.Format("2006-01-02"),
			"amount":   amount,
			"merchant": merchant,
		},
	})
}

// applyRules returns the first enabled rule matching the merchant, priority
// ascending, or nil.
func (s *Server) applyRules(merchant string) *RuleModel {
	var models []RuleModel
	if err := s.db.Where("enabled = ?", true).Order("priority ASC").Find(&models).Error; err != nil {
		return nil
	}

	norm := entity.NormalizeMerchant(merchant)
	for i := range models {
		if models[i].toRuleEntity().Matches(norm) {
			return &models[i]
		}
	}
	return nil
}

// loadCategory fetches a category or writes a 400 and returns ok=false.
func (s *Server) loadCategory(ctx *gin.Context, id string) (*CategoryModel, bool) {
	var category CategoryModel
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "category not found"})
		return nil, false
	}
	return &category, true
}
