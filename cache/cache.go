package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ключи кеша
const (
	ProductListKey    = "products:list"
	ProductKeyFmt     = "products:%d"
	LeaseScheduleFmt  = "leases:%d:schedule"
	ScheduleTTL       = time.Minute
	ProductTTL        = 5 * time.Minute
)

var client *redis.Client

// Init инициализирует подключение к Redis.
// При недоступном Redis приложение продолжает работать без кеша.
func Init(addr, password string) error {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCached возвращает данные по ключу
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached сохраняет данные с TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys удаляет конкретные ключи
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidatePattern удаляет все ключи по шаблону
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateLeaseSchedule сбрасывает расчетный график договора.
// Вызывается при создании платежа и смене статуса платежа.
func InvalidateLeaseSchedule(ctx context.Context, leaseID uint) {
	InvalidateKeys(ctx, fmt.Sprintf(LeaseScheduleFmt, leaseID))
}

// InvalidateProductCaches сбрасывает кеш каталога.
// Вызывается при создании и изменении товаров.
func InvalidateProductCaches(ctx context.Context) {
	InvalidatePattern(ctx, "products:*")
}

// IsHealthy возвращает true, если соединение с Redis живое
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
