package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/jhoicas/invorya-admin/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var _ ports.CatalogSource = (*CatalogCache)(nil)

// Observer cuenta aciertos y fallos de la caché. Puede ser nil.
type Observer interface {
	CacheLookup(resource, result string)
}

// CatalogCache decora un CatalogSource guardando instantáneas JSON por empresa
// en Redis con TTL. Una falla de Redis nunca bloquea la lectura: se degrada a
// la fuente original.
type CatalogCache struct {
	next   ports.CatalogSource
	client *redis.Client
	ttl    time.Duration
	obs    Observer
	log    *logger.Logger
}

// NewCatalogCache construye el decorador.
func NewCatalogCache(next ports.CatalogSource, client *redis.Client, ttl time.Duration, obs Observer, log *logger.Logger) *CatalogCache {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogCache{next: next, client: client, ttl: ttl, obs: obs, log: log.Component("catalog_cache")}
}

func (c *CatalogCache) Products(ctx context.Context, sess *entity.Session) ([]entity.Product, error) {
	return cached(ctx, c, key(sess, "products"), "products", func() ([]entity.Product, error) {
		return c.next.Products(ctx, sess)
	})
}

func (c *CatalogCache) Parties(ctx context.Context, sess *entity.Session, kind entity.PartyKind) ([]entity.Party, error) {
	resource := string(kind) + "s"
	return cached(ctx, c, key(sess, resource), resource, func() ([]entity.Party, error) {
		return c.next.Parties(ctx, sess, kind)
	})
}

// Invalidate borra las instantáneas de la empresa de la sesión.
func (c *CatalogCache) Invalidate(ctx context.Context, sess *entity.Session) error {
	return c.client.Del(ctx,
		key(sess, "products"),
		key(sess, string(entity.PartyCustomer)+"s"),
		key(sess, string(entity.PartySupplier)+"s"),
	).Err()
}

func key(sess *entity.Session, resource string) string {
	return fmt.Sprintf("catalog:%s:%s", sess.Identity.CompanyID, resource)
}

func cached[T any](ctx context.Context, c *CatalogCache, k, resource string, load func() ([]T, error)) ([]T, error) {
	data, err := c.client.Get(ctx, k).Bytes()
	switch {
	case err == nil:
		var out []T
		if jerr := json.Unmarshal(data, &out); jerr == nil {
			c.observe(resource, "hit")
			return out, nil
		}
		c.observe(resource, "error")
	case errors.Is(err, redis.Nil):
		c.observe(resource, "miss")
	default:
		c.observe(resource, "error")
		c.log.Warn().Err(err).Str("key", k).Msg("redis no disponible, leyendo de la fuente")
	}

	out, err := load()
	if err != nil {
		return nil, err
	}
	if raw, jerr := json.Marshal(out); jerr == nil {
		if serr := c.client.Set(ctx, k, raw, c.ttl).Err(); serr != nil {
			c.log.Warn().Err(serr).Str("key", k).Msg("no se pudo guardar en caché")
		}
	}
	return out, nil
}

func (c *CatalogCache) observe(resource, result string) {
	if c.obs != nil {
		c.obs.CacheLookup(resource, result)
	}
}
