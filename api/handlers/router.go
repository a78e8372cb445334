// Package handlers is the REST harness over the platform state machine. The
// caller identity arrives in the X-Identity header; signature verification is
// the hosting ledger's responsibility, not this harness's.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nivaro-ai/nivaro-launchpad/core"
	"github.com/nivaro-ai/nivaro-launchpad/governance"
	"github.com/nivaro-ai/nivaro-launchpad/ledger"
	"github.com/nivaro-ai/nivaro-launchpad/platform"
	"github.com/nivaro-ai/nivaro-launchpad/registry"
	"github.com/nivaro-ai/nivaro-launchpad/staking"
)

// Env bundles the services the handlers operate on.
type Env struct {
	Platform    *platform.Service
	Registry    *registry.Service
	Staking     *staking.Service
	Governance  *governance.Service
	Vault       ledger.TokenVault
	JournalPath string
	Clock       func() int64 // timestamp source, defaults to wall clock
}

func (e *Env) now() int64 {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now().Unix()
}

func caller(c *gin.Context) core.Identity {
	return core.Identity(c.GetHeader("X-Identity"))
}

// NewRouter wires every operation onto a gin engine.
func NewRouter(e *Env) *gin.Engine {
	r := gin.Default()

	r.POST("/platform", e.InitializePlatform)
	r.PUT("/platform/config", e.UpdatePlatformConfig)
	r.PUT("/platform/governance", e.SetGovernanceEnabled)
	r.GET("/platform/config", e.GetPlatformConfig)

	r.POST("/agents", e.RegisterAgent)
	r.GET("/agents", e.ListAgents)
	r.GET("/agents/:owner/:id", e.GetAgent)
	r.PUT("/agents/:owner/:id", e.UpdateAgentMetadata)
	r.POST("/agents/:owner/:id/performance", e.RecordPerformance)

	r.POST("/stake", e.Stake)
	r.POST("/unstake", e.Unstake)
	r.GET("/stake/:user", e.GetStake)
	r.POST("/rewards/claim", e.ClaimRewards)

	r.POST("/proposals", e.CreateProposal)
	r.GET("/proposals", e.ListProposals)
	r.GET("/proposals/:id", e.GetProposal)
	r.POST("/proposals/:id/votes", e.CastVote)
	r.POST("/proposals/:id/finalize", e.FinalizeProposal)

	r.GET("/ws", e.HandleWebSocket)

	return r
}

// abortWithError translates a platform error into an HTTP response.
func abortWithError(c *gin.Context, err error) {
	var perr *core.Error
	if !errors.As(err, &perr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(statusFor(perr), gin.H{"error": perr.Message, "code": perr.Code})
}

func statusFor(err *core.Error) int {
	switch err {
	case core.ErrUnauthorizedAdmin, core.ErrUnauthorizedUser:
		return http.StatusForbidden
	case core.ErrAgentNotFound, core.ErrStakeAccountNotFound, core.ErrInvalidProposal:
		return http.StatusNotFound
	case core.ErrAlreadyInitialized, core.ErrAgentAlreadyRegistered, core.ErrAlreadyVoted,
		core.ErrStakingPeriodNotEnded, core.ErrVotingPeriodNotEnded, core.ErrGovernanceActionNotAllowed:
		return http.StatusConflict
	case core.ErrArithmetic, core.ErrSerialization, core.ErrUnexpected:
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
