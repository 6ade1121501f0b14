package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverDisk  = "disk"
	StorageDriverMinio = "minio"
)

const (
	defaultUploadDir          = "./uploads"
	defaultMaxMediaBytes      = 50 << 20
	defaultMaxDocumentBytes   = 20 << 20
	defaultCacheTTLSeconds    = 300
	defaultMinioBucket        = "cms-uploads"
	defaultShutdownTimeoutSec = 10
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	StorageDriver string
	UploadDir     string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	RedisAddr     string
	RedisPassword string

	JWTPublicKey    string
	JWTRequiredRole string

	MaxMediaBytes    int64
	MaxDocumentBytes int64
	CacheTTL         time.Duration
	ShutdownTimeout  time.Duration
}

func Load() (*Settings, error) {
	ctx := context.Background()
	if err := godotenv.Load(".env"); err != nil {
		logger.Debug(ctx, "No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		logger.Debugf(ctx, "could not read .env file: %v", err)
	}

	for _, key := range []string{
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"SERVER_PORT",
	} {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	s := &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		StorageDriver: strings.ToLower(getString("STORAGE_DRIVER", StorageDriverDisk)),
		UploadDir:     getString("UPLOAD_DIR", defaultUploadDir),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		MinioBucket:    getString("MINIO_BUCKET", defaultMinioBucket),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		JWTPublicKey:    viper.GetString("JWT_PUBLIC_KEY"),
		JWTRequiredRole: viper.GetString("JWT_REQUIRED_ROLE"),

		MaxMediaBytes:    getInt64("UPLOAD_MAX_MEDIA_BYTES", defaultMaxMediaBytes),
		MaxDocumentBytes: getInt64("UPLOAD_MAX_DOCUMENT_BYTES", defaultMaxDocumentBytes),
		CacheTTL:         time.Duration(getInt64("CACHE_TTL_SECONDS", defaultCacheTTLSeconds)) * time.Second,
		ShutdownTimeout:  time.Duration(getInt64("SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSec)) * time.Second,
	}

	switch s.StorageDriver {
	case StorageDriverDisk:
	case StorageDriverMinio:
		for _, key := range []string{"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY"} {
			if !viper.IsSet(key) {
				return nil, fmt.Errorf("%s is required when STORAGE_DRIVER is %s", key, StorageDriverMinio)
			}
		}
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDriverDisk, StorageDriverMinio, s.StorageDriver)
	}

	if s.MaxMediaBytes <= 0 || s.MaxDocumentBytes <= 0 {
		return nil, fmt.Errorf("upload size limits must be positive")
	}

	return s, nil
}

func getString(key, def string) string {
	if !viper.IsSet(key) {
		return def
	}
	return viper.GetString(key)
}

func getInt64(key string, def int64) int64 {
	if !viper.IsSet(key) {
		return def
	}
	return viper.GetInt64(key)
}
