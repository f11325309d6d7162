package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/GreennWolf/Antojos-sub000/internal/pedido"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	borradorPrefix = "borrador:mesa:"
	borradorTTL    = 24 * time.Hour
)

// Borrador is the Redis-cached copy of a table's open order. Postgres keeps
// the durable mirror; this copy serves reads without touching the database.
type Borrador struct {
	MesaID  uuid.UUID     `json:"mesa_id"`
	Pedido  pedido.Pedido `json:"pedido"`
	Version int           `json:"version"`
}

type BorradorRepository interface {
	Guardar(ctx context.Context, b *Borrador) error
	Obtener(ctx context.Context, mesaID uuid.UUID) (*Borrador, error)
	Eliminar(ctx context.Context, mesaID uuid.UUID) error
}

type borradorRepo struct{ rdb *redis.Client }

func NewBorradorRepository(rdb *redis.Client) BorradorRepository { return &borradorRepo{rdb: rdb} }

func (r *borradorRepo) key(mesaID uuid.UUID) string { return borradorPrefix + mesaID.String() }

func (r *borradorRepo) Guardar(ctx context.Context, b *Borrador) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("serializando borrador: %w", err)
	}
	return r.rdb.Set(ctx, r.key(b.MesaID), data, borradorTTL).Err()
}

// Obtener returns (nil, nil) on cache miss so callers fall back to Postgres.
func (r *borradorRepo) Obtener(ctx context.Context, mesaID uuid.UUID) (*Borrador, error) {
	data, err := r.rdb.Get(ctx, r.key(mesaID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var b Borrador
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("borrador corrupto para mesa %s: %w", mesaID, err)
	}
	return &b, nil
}

func (r *borradorRepo) Eliminar(ctx context.Context, mesaID uuid.UUID) error {
	return r.rdb.Del(ctx, r.key(mesaID)).Err()
}
