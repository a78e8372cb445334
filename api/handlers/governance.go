package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type createProposalRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	VotingDuration int64    `json:"votingDuration" binding:"required"`
	Options        []string `json:"options" binding:"required"`
}

// CreateProposal opens a governance vote created by the caller.
func (e *Env) CreateProposal(c *gin.Context) {
	var req createProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := e.Governance.CreateProposal(caller(c), req.Title, req.Description, req.VotingDuration, req.Options, e.now())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"proposalId": id})
}

type castVoteRequest struct {
	Option uint8 `json:"option"`
}

// CastVote records the caller's stake-weighted vote.
func (e *Env) CastVote(c *gin.Context) {
	proposalID, ok := proposalPath(c)
	if !ok {
		return
	}
	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := e.Governance.CastVote(caller(c), proposalID, req.Option, e.now()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "voted"})
}

// FinalizeProposal closes a proposal after its voting window. Permissionless.
func (e *Env) FinalizeProposal(c *gin.Context) {
	proposalID, ok := proposalPath(c)
	if !ok {
		return
	}
	status, err := e.Governance.FinalizeProposal(caller(c), proposalID, e.now())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status.String()})
}

// GetProposal returns one proposal record.
func (e *Env) GetProposal(c *gin.Context) {
	proposalID, ok := proposalPath(c)
	if !ok {
		return
	}
	proposal, err := e.Governance.GetProposal(proposalID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

// ListProposals returns every proposal.
func (e *Env) ListProposals(c *gin.Context) {
	c.JSON(http.StatusOK, e.Governance.ListProposals())
}

func proposalPath(c *gin.Context) (uint64, bool) {
	proposalID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return 0, false
	}
	return proposalID, true
}
