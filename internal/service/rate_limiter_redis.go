package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// predictCountScript cuenta un request en el bucket de la ventana actual. El TTL se fija
// solo en el primer INCR para que el bucket muera con su ventana.
const predictCountScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`

// RedisLimiterOptions viene de PREDICT_RATE_* en la configuracion.
type RedisLimiterOptions struct {
	Window  time.Duration
	Max     int
	Timeout time.Duration
	Prefix  string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisRateLimiter struct {
	logger *zap.Logger
	client redisEvaler
	opts   RedisLimiterOptions
	now    func() time.Time
}

// NewRedisRateLimiter comparte el limite de /predict entre replicas con ventanas fijas
// alineadas al reloj. Si Redis no responde, el request pasa.
func NewRedisRateLimiter(logger *zap.Logger, client *redis.Client, opts RedisLimiterOptions) RateLimiter {
	if client == nil {
		return nil
	}
	return newRedisRateLimiter(logger, client, opts)
}

func newRedisRateLimiter(logger *zap.Logger, client redisEvaler, opts RedisLimiterOptions) *redisRateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Window < time.Millisecond {
		opts.Window = time.Minute
	}
	if opts.Max <= 0 {
		opts.Max = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 500 * time.Millisecond
	}
	if opts.Prefix == "" {
		opts.Prefix = "predict:rl:"
	}
	return &redisRateLimiter{
		logger: logger,
		client: client,
		opts:   opts,
		now:    time.Now,
	}
}

func (l *redisRateLimiter) Allow(clientIP string) bool {
	if l == nil || l.client == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), l.opts.Timeout)
	defer cancel()

	key, ttl := l.bucket(clientIP)
	count, err := l.client.Eval(ctx, predictCountScript, []string{key}, ttl.Milliseconds()).Int()
	if err != nil {
		l.logger.Warn("redis rate limiter unavailable, allowing request", zap.String("key", key), zap.Error(err))
		return true
	}
	return count <= l.opts.Max
}

// bucket arma la clave de la ventana en curso y el tiempo que le queda.
func (l *redisRateLimiter) bucket(clientIP string) (string, time.Duration) {
	ip := strings.TrimSpace(clientIP)
	if ip == "" {
		ip = "unknown"
	}
	windowMs := l.opts.Window.Milliseconds()
	nowMs := l.now().UnixMilli()
	index := nowMs / windowMs
	remaining := time.Duration((index+1)*windowMs-nowMs) * time.Millisecond
	return l.opts.Prefix + ip + ":" + strconv.FormatInt(index, 10), remaining
}
