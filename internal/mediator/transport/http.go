package transport

import (
	"crypto/subtle"
	"net/http"

	"github.com/chistokhinsv/gns3-mcp-go/pkg/version"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
)

// HTTPConfig configures the HTTP transport's bearer-style auth and debug
// surface.
type HTTPConfig struct {
	APIKey string
	Debug  bool
}

// NewHTTPHandler wraps an MCP server in the streamable-HTTP transport
// behind a gin router, installing middleware before routes. Auth uses a
// single MCP_API_KEY header rather than an Authorization: Bearer token,
// since this surface's clients are agents, not browsers.
func NewHTTPHandler(mcpServer *server.MCPServer, cfg HTTPConfig) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.String()}) })

	streamable := server.NewStreamableHTTPServer(mcpServer)
	mcpGroup := r.Group("/mcp")
	mcpGroup.Use(apiKeyAuth(cfg.APIKey))
	mcpGroup.Any("/*any", gin.WrapH(streamable))

	if cfg.Debug {
		pprof.Register(r)
	}
	return r
}

// apiKeyAuth enforces the MCP_API_KEY header when apiKey is non-empty;
// an empty apiKey disables auth entirely, an escape hatch for local
// development.
func apiKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}

		provided := c.GetHeader("MCP_API_KEY")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid MCP_API_KEY header"})
			return
		}
		c.Next()
	}
}
