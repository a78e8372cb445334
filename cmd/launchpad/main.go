package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/nivaro-ai/nivaro-launchpad/api/handlers"
	"github.com/nivaro-ai/nivaro-launchpad/communication"
	"github.com/nivaro-ai/nivaro-launchpad/core"
	"github.com/nivaro-ai/nivaro-launchpad/governance"
	"github.com/nivaro-ai/nivaro-launchpad/ledger"
	"github.com/nivaro-ai/nivaro-launchpad/platform"
	"github.com/nivaro-ai/nivaro-launchpad/registry"
	"github.com/nivaro-ai/nivaro-launchpad/staking"
	"github.com/nivaro-ai/nivaro-launchpad/utils"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if utils.FileExists(".env") {
		if err := godotenv.Load(); err != nil {
			log.Printf("Failed to load .env: %v", err)
		}
	}

	var (
		port        = flag.Int("port", 0, "API port (0 picks the first free port from 8080)")
		natsURL     = flag.String("nats-url", os.Getenv("NATS_URL"), "NATS server URL (empty starts an embedded server)")
		journalPath = flag.String("journal", envOr("EVENT_JOURNAL", "data/events/journal.jsonl"), "event journal path")
		genIdentity = flag.Bool("generate-identity", false, "print a fresh caller identity and exit")
	)
	flag.Parse()

	if *genIdentity {
		fmt.Println(utils.GenerateIdentity())
		return
	}

	nc, shutdown, err := communication.Connect(*natsURL, 4222)
	if err != nil {
		log.Fatalf("Failed to connect event broker: %v", err)
	}
	defer shutdown()

	broker := communication.NewBroker(nc, *journalPath)
	state := ledger.NewState()
	vault := ledger.NewMemoryVault(map[core.Identity]uint64{
		ledger.RewardVaultAccount: envUint("REWARD_POOL_BALANCE", 1_000_000_000),
	})

	env := &handlers.Env{
		Platform:    platform.NewService(state, broker),
		Registry:    registry.NewService(state, broker),
		Staking:     staking.NewService(state, vault, broker),
		Governance:  governance.NewService(state, broker),
		Vault:       vault,
		JournalPath: *journalPath,
	}
	router := handlers.NewRouter(env)

	// Dev faucet so local users can fund stakes against the in-memory vault.
	router.POST("/faucet", func(c *gin.Context) {
		var req struct {
			Amount uint64 `json:"amount" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		user := core.Identity(c.GetHeader("X-Identity"))
		if !core.ValidIdentity(user) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Identity header"})
			return
		}
		if err := vault.Deposit(user, req.Amount); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"balance": vault.Balance(user)})
	})

	apiPort := *port
	if apiPort == 0 {
		apiPort = utils.FindAvailableAPIPort()
	}
	log.Printf("Launchpad API listening on :%d", apiPort)
	if err := router.Run(fmt.Sprintf(":%d", apiPort)); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
