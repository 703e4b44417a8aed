package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"depression-api/internal/service"
)

const requestIDHeader = "X-Request-ID"

// RouterOptions agrupa lo que el router toma de la configuracion.
type RouterOptions struct {
	AllowedOrigins   []string
	AllowAllOrigins  bool
	PredictRateLimit service.RateLimiter
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(logger *zap.Logger, h *Handlers, opts RouterOptions) *gin.Engine {
	r := gin.New()

	r.Use(
		requestIDMiddleware(),
		zapLoggerMiddleware(logger),
		gin.Recovery(),
		echoRequestedHeadersMiddleware(),
		cors.New(corsConfig(opts)),
		jsonContentTypeMiddleware(),
	)

	limiter := opts.PredictRateLimit
	if limiter == nil {
		limiter = service.AllowAll{}
	}

	r.GET("/", h.Root)
	r.GET("/healthz", h.Health)
	r.GET("/options", h.Options)
	r.POST("/predict", rateLimitMiddleware(logger, limiter), h.Predict)

	return r
}

// corsConfig refleja el Origin del request en vez de "*" para que el navegador acepte
// credenciales.
func corsConfig(opts RouterOptions) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", "Authorization", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	cfg.AllowCredentials = true
	cfg.MaxAge = 12 * time.Hour
	if opts.AllowAllOrigins || len(opts.AllowedOrigins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = opts.AllowedOrigins
	}
	return cfg
}

// echoRequestedHeadersMiddleware responde un preflight con los headers que pidio el
// navegador. cors.Config solo acepta una lista fija y "*" no vale con credenciales.
func echoRequestedHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requested := c.GetHeader("Access-Control-Request-Headers")
		if c.Request.Method == http.MethodOptions && requested != "" && c.GetHeader("Origin") != "" {
			c.Writer = &allowHeadersWriter{ResponseWriter: c.Writer, requested: requested}
		}
		c.Next()
	}
}

// allowHeadersWriter pisa Access-Control-Allow-Headers justo antes de escribir el status,
// despues de que el middleware de cors cargo su lista.
type allowHeadersWriter struct {
	gin.ResponseWriter
	requested string
}

func (w *allowHeadersWriter) WriteHeader(code int) {
	w.apply()
	w.ResponseWriter.WriteHeader(code)
}

func (w *allowHeadersWriter) WriteHeaderNow() {
	w.apply()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *allowHeadersWriter) apply() {
	h := w.Header()
	if h.Get("Access-Control-Allow-Methods") == "" {
		return
	}
	h.Set("Access-Control-Allow-Headers", w.requested)
	h.Add("Vary", "Access-Control-Request-Headers")
}

// requestIDMiddleware reutiliza X-Request-ID si vino en el request o genera uno nuevo.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}

func rateLimitMiddleware(logger *zap.Logger, limiter service.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			logger.Warn("rate limited", zap.String("client_ip", c.ClientIP()), zap.Error(service.ErrRateLimited))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "too many requests"})
			return
		}
		c.Next()
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
