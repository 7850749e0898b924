package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ternarybob/apidex/internal/common"
	"github.com/ternarybob/apidex/internal/services/apis"
	"github.com/ternarybob/apidex/internal/services/cache"
	"github.com/ternarybob/apidex/internal/services/scheduler"
	"github.com/ternarybob/apidex/internal/services/search"
	"github.com/ternarybob/apidex/internal/storage/badger"
	"github.com/ternarybob/apidex/internal/yapi"
)

func main() {
	// Load configuration
	configPath := os.Getenv("APIDEX_CONFIG")
	if configPath == "" {
		configPath = "apidex.toml"
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = ""
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout belongs to the MCP protocol; route logs to file only.
	config.Logging.Output = []string{"file"}
	logger := common.InitLogger(config)

	if config.Catalog.BaseURL == "" {
		logger.Fatal().Msg("catalog.base_url is not configured (set APIDEX_YAPI_BASE_URL or apidex.toml)")
	}

	// Initialize storage
	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer storageManager.Close()

	// Build the per-project credential table from the configured string
	tokens := yapi.ParseTokens(config.Catalog.Tokens)

	timeout := yapi.DefaultTimeout
	if d, err := time.ParseDuration(config.Catalog.Timeout); err == nil && d > 0 {
		timeout = d
	}

	client := yapi.NewClient(config.Catalog.BaseURL, tokens,
		yapi.WithLogger(logger),
		yapi.WithTimeout(timeout),
		yapi.WithRateLimit(config.Catalog.RateLimit),
	)

	// Initialize services; the cache applies its startup policy here
	cacheService := cache.NewService(client, storageManager.SnapshotStorage(), tokens.ProjectIDs(), config.Cache.TTLMinutes, logger)
	searchService := search.NewService(client, cacheService, &config.Search, logger)
	apiService := apis.NewService(client, logger)

	// Optional background refresh schedule
	refreshScheduler := scheduler.NewService(cacheService, config.Cache.RefreshSchedule, logger)
	if err := refreshScheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start refresh scheduler")
	}
	defer refreshScheduler.Stop()

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"apidex",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// Register catalog tools
	mcpServer.AddTool(createGetAPIDescTool(), handleGetAPIDesc(apiService, logger))
	mcpServer.AddTool(createSaveAPITool(), handleSaveAPI(apiService, logger))
	mcpServer.AddTool(createSearchByNameTool(), handleSearchByName(searchService, logger))
	mcpServer.AddTool(createSearchByPathTool(), handleSearchByPath(searchService, logger))
	mcpServer.AddTool(createListProjectsTool(), handleListProjects(cacheService, logger))
	mcpServer.AddTool(createGetCategoriesTool(), handleGetCategories(cacheService, apiService, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
