package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nivaro-ai/nivaro-launchpad/core"
)

type stakeRequest struct {
	Owner   core.Identity `json:"owner" binding:"required"`
	AgentID uint64        `json:"agentId"`
	Amount  uint64        `json:"amount" binding:"required"`
}

// Stake deposits the caller's tokens against an agent.
func (e *Env) Stake(c *gin.Context) {
	var req stakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := e.Staking.Stake(caller(c), req.Owner, req.AgentID, req.Amount, e.now()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staked": req.Amount})
}

// Unstake withdraws part of the caller's stake from an agent.
func (e *Env) Unstake(c *gin.Context) {
	var req stakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := e.Staking.Unstake(caller(c), req.Owner, req.AgentID, req.Amount, e.now()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unstaked": req.Amount})
}

// ClaimRewards settles and pays out the caller's accrued rewards.
func (e *Env) ClaimRewards(c *gin.Context) {
	claimed, err := e.Staking.ClaimRewards(caller(c), e.now())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claimed": claimed})
}

// GetStake returns a user's stake record.
func (e *Env) GetStake(c *gin.Context) {
	stake, err := e.Staking.GetStake(core.Identity(c.Param("user")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stake)
}
