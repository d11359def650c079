package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulive/tutorlive_backend/internal/config"
)

type ConfigController struct {
	Cfg *config.Config
}

// Get exposes the client-relevant deployment settings: where the media
// transport lives and whether anonymous capability requests work.
func (cc *ConfigController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"media_url":      cc.Cfg.MediaServerURL,
		"auth_required":  cc.Cfg.HardenedRTC(),
		"schema_version": 1,
	})
}
