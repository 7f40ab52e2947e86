package servicecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

const keyPrefix = "laundry:service:"

// ServiceSource источник услуг, перед которым стоит кеш
type ServiceSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache read-through кеш услуг в Redis
// Ошибки Redis не прерывают запрос: услуга читается из источника напрямую.
// Блокирующие чтения (LockForUpdate) через кеш не проходят.
type Cache struct {
	next   ServiceSource
	client redis.Cmdable
	ttl    time.Duration
	logger Logger
}

// New создает кеш поверх источника услуг
func New(next ServiceSource, client redis.Cmdable, ttl time.Duration, logger Logger) *Cache {
	return &Cache{next: next, client: client, ttl: ttl, logger: logger}
}

// NewClient создает клиент Redis
func NewClient(addr, password string, db, poolSize int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: poolSize,
	})
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

type cachedService struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"priceCents"`
	Active          bool      `json:"active"`
	OpenHour        int       `json:"open_hour"`
	CloseHour       int       `json:"close_hour"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// GetByID возвращает услугу из кеша или из источника
func (c *Cache) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	switch {
	case err == nil:
		var cached cachedService
		if err := json.Unmarshal(raw, &cached); err == nil {
			return toDomain(cached), nil
		}
		c.logger.Warn("servicecache: corrupted entry for service=%d, reloading", id)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("servicecache: get service=%d failed: %v", id, err)
	}

	service, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(fromDomain(service))
	if err == nil {
		if err := c.client.Set(ctx, key(id), payload, c.ttl).Err(); err != nil {
			c.logger.Warn("servicecache: set service=%d failed: %v", id, err)
		}
	}

	return service, nil
}

// Invalidate удаляет услугу из кеша
func (c *Cache) Invalidate(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("servicecache: invalidate service=%d: %w", id, err)
	}
	return nil
}

func key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

func fromDomain(s *domain.Service) cachedService {
	return cachedService{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		PriceCents:      s.PriceCents,
		Active:          s.Active,
		OpenHour:        s.OpenHour,
		CloseHour:       s.CloseHour,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toDomain(c cachedService) *domain.Service {
	return &domain.Service{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		DurationMinutes: c.DurationMinutes,
		PriceCents:      c.PriceCents,
		Active:          c.Active,
		OpenHour:        c.OpenHour,
		CloseHour:       c.CloseHour,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
