package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"catalog-service/internal/domain"
	"catalog-service/internal/domain/repositories"

	"github.com/redis/go-redis/v9"
)

// versionTTL keeps version counters around far longer than any in-flight read.
const versionTTL = 24 * time.Hour

var errStaleFill = errors.New("artwork changed while it was loaded")

// RedisRepo caches artwork documents. A nil client disables the cache.
type RedisRepo struct {
	client *redis.Client
}

func NewRedisRepo(client *redis.Client) repositories.ArtworkCache {
	return &RedisRepo{client: client}
}

func artworkKey(id int64) string {
	return "artwork:" + strconv.FormatInt(id, 10)
}

func versionKey(id int64) string {
	return artworkKey(id) + ":version"
}

func (r *RedisRepo) Get(ctx context.Context, id int64) (*domain.Artwork, error) {
	if r.client == nil {
		return nil, nil
	}
	data, err := r.client.Get(ctx, artworkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var artwork domain.Artwork
	if err := json.Unmarshal(data, &artwork); err != nil {
		return nil, err
	}
	return &artwork, nil
}

func (r *RedisRepo) Version(ctx context.Context, id int64) (int64, error) {
	if r.client == nil {
		return 0, nil
	}
	v, err := r.client.Get(ctx, versionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Fill writes the artwork only while its version still equals version. The
// version key is watched, so an Invalidate landing between the check and the
// write aborts the transaction.
func (r *RedisRepo) Fill(ctx context.Context, artwork *domain.Artwork, version int64, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	data, err := json.Marshal(artwork)
	if err != nil {
		return err
	}

	vkey := versionKey(artwork.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, artworkKey(artwork.ID), data, ttl)
			return nil
		})
		return err
	}, vkey)
	if errors.Is(err, errStaleFill) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (r *RedisRepo) Invalidate(ctx context.Context, id int64) error {
	if r.client == nil {
		return nil
	}
	vkey := versionKey(id)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, vkey)
		pipe.Expire(ctx, vkey, versionTTL)
		pipe.Del(ctx, artworkKey(id))
		return nil
	})
	return err
}
