package repository

import (
	"context"
	"fmt"

	"github.com/AndersondSilva/wow-server-dashboard/internal/models"
	sharedredis "github.com/AndersondSilva/wow-server-dashboard/internal/redis"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	configCollection   = "server_config"
	configViewCacheKey = "config:view"
)

// ConfigRepository stores the server-configuration singleton in MongoDB and
// keeps a Redis-cached copy for reads. At most one document ever exists in
// the collection.
type ConfigRepository struct {
	col   *mongo.Collection
	cache *sharedredis.ViewCache[models.ServerConfig]
}

func NewConfigRepository(db *mongo.Database, redisClient *goredis.Client, logger *zap.Logger) *ConfigRepository {
	return &ConfigRepository{
		col:   db.Collection(configCollection),
		cache: sharedredis.NewViewCache[models.ServerConfig](redisClient, 0, logger),
	}
}

// Get returns the persisted singleton, Redis first, then MongoDB.
// ErrNotFound means nothing has ever been saved.
func (r *ConfigRepository) Get(ctx context.Context) (*models.ServerConfig, error) {
	if cfg, ok := r.cache.Get(ctx, configViewCacheKey); ok {
		return cfg, nil
	}

	var cfg models.ServerConfig
	err := r.col.FindOne(ctx, bson.M{}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server config: %w", err)
	}

	r.cache.Set(ctx, configViewCacheKey, &cfg)
	return &cfg, nil
}

// Put overwrites every field of the singleton, inserting it if absent.
// Last writer wins; there is no optimistic concurrency on this document.
func (r *ConfigRepository) Put(ctx context.Context, cfg *models.ServerConfig) error {
	update := bson.M{"$set": bson.M{
		"serverName": cfg.ServerName,
		"realmlist":  cfg.Realmlist,
		"expansion":  cfg.Expansion,
		"xpRate":     cfg.XPRate,
		"dropRate":   cfg.DropRate,
		"goldRate":   cfg.GoldRate,
		"repRate":    cfg.RepRate,
		"motd":       cfg.Motd,
	}}
	_, err := r.col.UpdateOne(ctx, bson.M{}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to put server config: %w", err)
	}

	// Refresh the read model so a GET right after the PUT sees the new
	// values even if the Mongo read would race.
	r.cache.Set(ctx, configViewCacheKey, cfg)
	return nil
}
