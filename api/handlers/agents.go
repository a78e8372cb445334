package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nivaro-ai/nivaro-launchpad/core"
)

type registerAgentRequest struct {
	AgentID     uint64 `json:"agentId"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// RegisterAgent registers an agent owned by the caller.
func (e *Env) RegisterAgent(c *gin.Context) {
	var req registerAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := e.Registry.RegisterAgent(caller(c), req.AgentID, req.Name, req.Description, e.now()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"agentId": req.AgentID, "owner": caller(c)})
}

type updateAgentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateAgentMetadata replaces an agent's metadata. Owner only.
func (e *Env) UpdateAgentMetadata(c *gin.Context) {
	owner, agentID, ok := agentPath(c)
	if !ok {
		return
	}
	var req updateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := e.Registry.UpdateAgentMetadata(caller(c), owner, agentID, req.Name, req.Description, e.now()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

type recordPerformanceRequest struct {
	Delta uint64 `json:"delta" binding:"required"`
}

// RecordPerformance credits an agent's performance score. Admin only.
func (e *Env) RecordPerformance(c *gin.Context) {
	owner, agentID, ok := agentPath(c)
	if !ok {
		return
	}
	var req recordPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := e.Registry.RecordPerformance(caller(c), owner, agentID, req.Delta, e.now()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// GetAgent returns one agent record.
func (e *Env) GetAgent(c *gin.Context) {
	owner, agentID, ok := agentPath(c)
	if !ok {
		return
	}
	agent, err := e.Registry.GetAgent(owner, agentID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

// ListAgents returns every registered agent.
func (e *Env) ListAgents(c *gin.Context) {
	c.JSON(http.StatusOK, e.Registry.ListAgents())
}

func agentPath(c *gin.Context) (core.Identity, uint64, bool) {
	owner := core.Identity(c.Param("owner"))
	agentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agent id"})
		return "", 0, false
	}
	return owner, agentID, true
}
