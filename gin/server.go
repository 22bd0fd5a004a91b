// Package gin adapts a gin engine to the Server interface the HTTP
// packages register their handlers on.
package gin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Server struct {
	router *gin.Engine
}

func New() *Server {
	router := gin.Default()

	// CORS
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept-Language, Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
		}
		c.Next()
	})

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	})

	// Ping
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"data": "ok"})
	})

	return &Server{router: router}
}

// RegisterHandler mounts a plain http.Handler on the gin router. The
// URI parameters are exposed to the handler under the "params" context
// key as a map[string]string.
func (s *Server) RegisterHandler(path, method string, f http.Handler) {
	s.router.Handle(method, path, func(c *gin.Context) {
		params := make(map[string]string, len(c.Params))
		for _, param := range c.Params {
			params[param.Key] = param.Value
		}

		ctx := context.WithValue(c.Request.Context(), "params", params)
		f.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
