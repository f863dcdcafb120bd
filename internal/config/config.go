package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/sadopc/pomo/internal/store"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds runtime settings. Zero minutes or goal mean "not configured":
// the command falls back to the values stored in the settings table.
type Config struct {
	DBPath     string `validate:"required"`
	LogPath    string `validate:"required"`
	LogLevel   string `validate:"oneof=debug info warn warning error off disabled"`
	CSVLogPath string

	WorkMinutes  int `validate:"gte=0,lte=1440"`
	BreakMinutes int `validate:"gte=0,lte=1440"`
	DailyGoal    int `validate:"gte=0,lte=100"`

	Username string
	Password string
}

var validate = validator.New()

// LoadDefaults populates c with defaults under the user config directory.
func (c *Config) LoadDefaults() error {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return fmt.Errorf("default db path: %w", err)
	}
	c.DBPath = dbPath
	c.LogPath = filepath.Join(filepath.Dir(dbPath), "pomo.log")
	c.LogLevel = "info"
	return nil
}

// Load applies defaults, then values from the given dotenv files (".env" when
// none are given; missing files are skipped), then POMO_* environment
// variables. Real environment variables win over dotenv values.
func Load(envFiles ...string) (*Config, error) {
	cfg := &Config{}
	if err := cfg.LoadDefaults(); err != nil {
		return nil, err
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	fileVals := map[string]string{}
	for _, f := range envFiles {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range vals {
			fileVals[k] = v
		}
	}

	env := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		return fileVals[key]
	}

	setString(&cfg.DBPath, env("POMO_DB"))
	setString(&cfg.LogPath, env("POMO_LOG_FILE"))
	setString(&cfg.LogLevel, env("POMO_LOG_LEVEL"))
	setString(&cfg.CSVLogPath, env("POMO_CSV_LOG"))
	setString(&cfg.Username, env("POMO_USER"))
	setString(&cfg.Password, env("POMO_PASSWORD"))

	ints := []struct {
		key string
		dst *int
	}{
		{"POMO_WORK_MINUTES", &cfg.WorkMinutes},
		{"POMO_BREAK_MINUTES", &cfg.BreakMinutes},
		{"POMO_DAILY_GOAL", &cfg.DailyGoal},
	}
	for _, i := range ints {
		v := env(i.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, i.key, v)
		}
		*i.dst = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
