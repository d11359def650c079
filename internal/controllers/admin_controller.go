package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edulive/tutorlive_backend/internal/models"
	"github.com/edulive/tutorlive_backend/internal/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func (a *AdminController) ListUsers(c *gin.Context) {
	limit := 20
	page := 1
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	sortBy := strings.ToLower(c.DefaultQuery("sort_by", "created_at"))
	sortDir := strings.ToUpper(c.DefaultQuery("sort_dir", "DESC"))
	if sortDir != "ASC" && sortDir != "DESC" {
		sortDir = "DESC"
	}
	allowedSorts := map[string]string{
		"id":         "id",
		"created_at": "created_at",
		"full_name":  "full_name",
		"email":      "email",
		"role":       "role",
		"active":     "active",
	}
	sortCol, ok := allowedSorts[sortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := fmt.Sprintf("%s %s", sortCol, sortDir)

	qText := strings.TrimSpace(c.Query("q"))
	roleFilter := strings.TrimSpace(strings.ToLower(c.Query("role")))
	if roleFilter != "" && !IsValidRole(roleFilter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role filter"})
		return
	}

	base := a.DB.Model(&models.User{})
	if qText != "" {
		like := "%" + qText + "%"
		base = base.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}
	if roleFilter != "" {
		base = base.Where("role = ?", roleFilter)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var users []models.User
	offset := (page - 1) * limit
	if err := base.Order(order).Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"user_id":    u.UserID,
			"full_name":  u.FullName,
			"email":      u.Email,
			"role":       u.Role,
			"active":     u.Active,
			"created_at": u.CreatedAt,
			"updated_at": u.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"data": out,
		"meta": gin.H{
			"total":    total,
			"limit":    limit,
			"page":     page,
			"sort_by":  sortCol,
			"sort_dir": sortDir,
		},
	})
}

func (a *AdminController) GetUser(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	var user models.User
	if err := a.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":    user.UserID,
		"full_name":  user.FullName,
		"email":      user.Email,
		"role":       user.Role,
		"active":     user.Active,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	})
}

type updateUserRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

func (a *AdminController) UpdateUser(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	var user models.User
	if err := a.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}
		user.Password = hashed
	}
	if req.Role != nil {
		if !IsValidRole(*req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if err := a.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (a *AdminController) DeleteUser(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	res := a.DB.Where("user_id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
