package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fhuszti/assets-cdn-go/internal/port"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	ServerPort int

	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	UseS3          bool
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	Buckets          []string
	DefaultBucket    string
	LocalStoragePath string

	Codec               port.Codec
	ContentTypeDenylist []string
	CacheControl        string
	RecordCacheTTL      time.Duration
	TranscodeWorkers    int

	RedisAddr     string
	RedisPassword string

	JWTSecret string
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	for _, key := range []string{
		"SERVER_PORT",
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"BUCKETS",
		"LOCAL_STORAGE_PATH",
	} {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	useS3 := viper.GetBool("USE_S3")
	if useS3 {
		for _, key := range []string{"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY"} {
			if !viper.IsSet(key) {
				return nil, fmt.Errorf("%s is required when USE_S3 is enabled", key)
			}
		}
	}

	buckets := splitList(viper.GetString("BUCKETS"))
	if len(buckets) == 0 {
		return nil, fmt.Errorf("BUCKETS must name at least one bucket tag")
	}
	defaultBucket := viper.GetString("DEFAULT_BUCKET")
	if defaultBucket == "" {
		defaultBucket = buckets[0]
	}

	codec, err := parseCodec()
	if err != nil {
		return nil, err
	}

	cacheControl := viper.GetString("CACHE_CONTROL")
	if cacheControl == "" {
		cacheControl = "public, max-age=604800, immutable"
	}

	recordTTL := viper.GetInt("RECORD_CACHE_TTL")
	if recordTTL <= 0 {
		recordTTL = 300
	}

	workers := viper.GetInt("TRANSCODE_WORKERS")
	if workers <= 0 {
		workers = 4
	}

	return &Settings{
		ServerPort:          viper.GetInt("SERVER_PORT"),
		MariaDBDSN:          viper.GetString("MARIADB_DSN"),
		MaxOpenConns:        viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:        viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime:     time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		UseS3:               useS3,
		MinioEndpoint:       viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:      viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:      viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:         viper.GetBool("MINIO_USE_SSL"),
		Buckets:             buckets,
		DefaultBucket:       defaultBucket,
		LocalStoragePath:    viper.GetString("LOCAL_STORAGE_PATH"),
		Codec:               codec,
		ContentTypeDenylist: splitList(viper.GetString("CONTENT_TYPE_DENYLIST")),
		CacheControl:        cacheControl,
		RecordCacheTTL:      time.Duration(recordTTL) * time.Second,
		TranscodeWorkers:    workers,
		RedisAddr:           viper.GetString("REDIS_ADDR"),
		RedisPassword:       viper.GetString("REDIS_PASSWORD"),
		JWTSecret:           viper.GetString("JWT_SECRET"),
	}, nil
}

// parseCodec maps SERVE_FORMAT/WEBP_QUALITY onto the closed codec type, so
// an invalid combination fails at startup instead of at serve time.
func parseCodec() (port.Codec, error) {
	format := strings.ToLower(viper.GetString("SERVE_FORMAT"))
	if format == "" {
		format = "webp"
	}
	switch format {
	case "png":
		return port.Codec{Format: port.FormatPNG}, nil
	case "webp":
		c := port.Codec{Format: port.FormatWebP}
		if viper.IsSet("WEBP_QUALITY") {
			q := viper.GetInt("WEBP_QUALITY")
			if q < 0 || q > 100 {
				return port.Codec{}, fmt.Errorf("WEBP_QUALITY must be between 0 and 100, got %d", q)
			}
			c.Quality = &q
		}
		return c, nil
	default:
		return port.Codec{}, fmt.Errorf("SERVE_FORMAT must be %q or %q, got %q", "png", "webp", format)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
