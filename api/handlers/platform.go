package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nivaro-ai/nivaro-launchpad/core"
)

type initializePlatformRequest struct {
	RewardRateBps  uint64 `json:"rewardRateBps"`
	MinStakeAmount uint64 `json:"minStakeAmount"`
	EpochDuration  int64  `json:"epochDuration" binding:"required"`
}

// InitializePlatform bootstraps the platform; the caller becomes the admin.
func (e *Env) InitializePlatform(c *gin.Context) {
	var req initializePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := e.Platform.Initialize(caller(c), req.RewardRateBps, req.MinStakeAmount, req.EpochDuration, e.now()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"admin": caller(c)})
}

type updateConfigRequest struct {
	RewardRateBps  uint64 `json:"rewardRateBps"`
	MinStakeAmount uint64 `json:"minStakeAmount"`
	EpochDuration  int64  `json:"epochDuration" binding:"required"`
}

// UpdatePlatformConfig overwrites the economic parameters. Admin only.
func (e *Env) UpdatePlatformConfig(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := e.Platform.UpdateConfig(caller(c), req.RewardRateBps, req.MinStakeAmount, req.EpochDuration, e.now()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

type setGovernanceRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetGovernanceEnabled toggles governance platform-wide. Admin only.
func (e *Env) SetGovernanceEnabled(c *gin.Context) {
	var req setGovernanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := e.Platform.SetGovernanceEnabled(caller(c), *req.Enabled, e.now()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": *req.Enabled})
}

// GetPlatformConfig returns the current configuration record.
func (e *Env) GetPlatformConfig(c *gin.Context) {
	cfg, ok := e.Platform.State.Config()
	if !ok {
		abortWithError(c, core.ErrNotInitialized)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
