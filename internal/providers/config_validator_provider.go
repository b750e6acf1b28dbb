package providers

import (
	"errors"
	"fmt"
	"scopewatch/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	if err := cv.validateDatabase(); err != nil {
		return err
	}
	if err := cv.validateCache(); err != nil {
		return err
	}
	return nil
}

func (cv *CnfValidator) validateDatabase() error {
	db := cv.conf.Database
	switch db.Driver {
	case "postgres":
		if db.DSN == "" && (db.Host == "" || db.Name == "") {
			return errors.New("database: postgres requires dsn or host and name")
		}
	case "sqlite":
		if db.Path == "" {
			return errors.New("database: sqlite requires path")
		}
	}
	return nil
}

func (cv *CnfValidator) validateCache() error {
	c := cv.conf.Cache
	if c.Backend == CacheBackendRedis && c.Enabled && c.Redis.Addr == "" {
		return errors.New("cache: redis backend requires redis.addr")
	}

	if c.TTL.Home < 0 || c.TTL.Monitor < 0 || c.TTL.Scope < 0 {
		return errors.New("cache: ttl values must not be negative")
	}

	for _, endpoint := range structures.SignedURLEndpoints {
		if err := structures.CheckSignedURLTTL(cv.conf.ConfiguredTTL(endpoint), cv.conf.ObjectStore.URLExpiry); err != nil {
			return fmt.Errorf("cache: endpoint %s: %w", endpoint, err)
		}
	}
	return nil
}
