package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fhuszti/assets-cdn-go/internal/port"
)

// requiredEnv covers every key Load refuses to start without.
var requiredEnv = map[string]string{
	"SERVER_PORT":               "8080",
	"MARIADB_DSN":               "user:pass@tcp(localhost:3306)/db",
	"MARIADB_MAX_OPEN_CONN":     "10",
	"MARIADB_MAX_IDLE_CONNS":    "5",
	"MARIADB_CONN_MAX_LIFETIME": "30",
	"BUCKETS":                   "attachments, avatars,backgrounds",
	"LOCAL_STORAGE_PATH":        "/var/lib/assets",
}

// chdirTemp switches to a temp directory to avoid loading a real .env.
func chdirTemp(t *testing.T) {
	t.Helper()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("could not chdir to temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatalf("could not chdir back to original dir: %v", err)
		}
	})
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	for k, v := range requiredEnv {
		t.Setenv(k, v)
	}
}

func TestLoad_Success(t *testing.T) {
	chdirTemp(t)
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort: expected %d, got %d", 8080, cfg.ServerPort)
	}
	if cfg.MariaDBDSN != requiredEnv["MARIADB_DSN"] {
		t.Errorf("MariaDBDSN: expected %q, got %q", requiredEnv["MARIADB_DSN"], cfg.MariaDBDSN)
	}
	if cfg.MaxOpenConns != 10 || cfg.MaxIdleConns != 5 {
		t.Errorf("pool sizes: got %d/%d, want 10/5", cfg.MaxOpenConns, cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != 30*time.Second {
		t.Errorf("ConnMaxLifetime: expected %v, got %v", 30*time.Second, cfg.ConnMaxLifetime)
	}
	if len(cfg.Buckets) != 3 || cfg.Buckets[1] != "avatars" {
		t.Errorf("Buckets: expected 3 trimmed tags, got %v", cfg.Buckets)
	}
	if cfg.DefaultBucket != "attachments" {
		t.Errorf("DefaultBucket: expected first bucket, got %q", cfg.DefaultBucket)
	}
	if cfg.LocalStoragePath != "/var/lib/assets" {
		t.Errorf("LocalStoragePath: got %q", cfg.LocalStoragePath)
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Codec.Format != port.FormatWebP || cfg.Codec.Quality != nil {
		t.Errorf("Codec: expected lossless webp by default, got %+v", cfg.Codec)
	}
	if cfg.CacheControl != "public, max-age=604800, immutable" {
		t.Errorf("CacheControl: got %q", cfg.CacheControl)
	}
	if cfg.RecordCacheTTL != 300*time.Second {
		t.Errorf("RecordCacheTTL: expected 5m, got %v", cfg.RecordCacheTTL)
	}
	if cfg.TranscodeWorkers != 4 {
		t.Errorf("TranscodeWorkers: expected 4, got %d", cfg.TranscodeWorkers)
	}
	if cfg.UseS3 {
		t.Error("UseS3: expected false by default")
	}
	if len(cfg.ContentTypeDenylist) != 0 {
		t.Errorf("ContentTypeDenylist: expected empty, got %v", cfg.ContentTypeDenylist)
	}
}

func TestLoad_CodecOverrides(t *testing.T) {
	chdirTemp(t)
	setRequiredEnv(t)
	t.Setenv("SERVE_FORMAT", "webp")
	t.Setenv("WEBP_QUALITY", "80")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Codec.Format != port.FormatWebP {
		t.Errorf("Codec.Format: got %v, want webp", cfg.Codec.Format)
	}
	if cfg.Codec.Quality == nil || *cfg.Codec.Quality != 80 {
		t.Errorf("Codec.Quality: got %v, want 80", cfg.Codec.Quality)
	}
}

func TestLoad_PNGFormat(t *testing.T) {
	chdirTemp(t)
	setRequiredEnv(t)
	t.Setenv("SERVE_FORMAT", "png")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Codec.Format != port.FormatPNG || cfg.Codec.Quality != nil {
		t.Errorf("Codec: expected png without quality, got %+v", cfg.Codec)
	}
}

func TestLoad_InvalidServeFormat(t *testing.T) {
	chdirTemp(t)
	setRequiredEnv(t)
	t.Setenv("SERVE_FORMAT", "avif")

	cfg, err := Load()
	if err == nil {
		t.Fatal("expected error for unknown SERVE_FORMAT, got nil")
	}
	if !strings.Contains(err.Error(), "SERVE_FORMAT") {
		t.Errorf("error = %q; want it to name SERVE_FORMAT", err.Error())
	}
	if cfg != nil {
		t.Errorf("expected cfg nil on error, got %#v", cfg)
	}
}

func TestLoad_InvalidWebPQuality(t *testing.T) {
	chdirTemp(t)
	setRequiredEnv(t)
	t.Setenv("WEBP_QUALITY", "101")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range WEBP_QUALITY, got nil")
	}
}

func TestLoad_MissingRequiredVars(t *testing.T) {
	for missingKey := range requiredEnv {
		t.Run(missingKey, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range requiredEnv {
				if k == missingKey {
					if err := os.Unsetenv(k); err != nil {
						t.Fatalf("could not unset key %s in env: %v", k, err)
					}
					continue
				}
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if err == nil {
				t.Fatalf("expected error for missing %s, got nil", missingKey)
			}
			if err.Error() != missingKey+" is required" {
				t.Errorf("error = %q; want %q", err.Error(), missingKey+" is required")
			}
			if cfg != nil {
				t.Errorf("expected cfg nil on error, got %#v", cfg)
			}
		})
	}
}

func TestLoad_S3RequiresMinioCredentials(t *testing.T) {
	chdirTemp(t)
	setRequiredEnv(t)
	t.Setenv("USE_S3", "true")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	// access key and secret key deliberately left unset

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing MinIO credentials, got nil")
	}

	t.Setenv("MINIO_ACCESS_KEY", "minio")
	t.Setenv("MINIO_SECRET_KEY", "minio123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error once credentials are set, got %v", err)
	}
	if !cfg.UseS3 || cfg.MinioEndpoint != "localhost:9000" {
		t.Errorf("got UseS3=%v endpoint=%q", cfg.UseS3, cfg.MinioEndpoint)
	}
}
