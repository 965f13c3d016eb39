package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const devSessionSecret = "dev-secret-change"

type Config struct {
	Port string `env:"PORT,default=8080"`

	// StorePath es el archivo SQLite de las colecciones locales.
	// ":memory:" usa el kv en memoria (modo dev/tests).
	StorePath string `env:"STORE_PATH,default=farm.db"`

	// DatabaseDSN opcional: si viene, animales/ventas/usuarios van a Postgres.
	DatabaseDSN string `env:"DB_DSN"`

	// FarmDataURL opcional: si viene, los agregados leen animales/ventas de un servicio remoto.
	FarmDataURL     string        `env:"FARMDATA_URL"`
	FarmDataAPIKey  string        `env:"FARMDATA_API_KEY"`
	FarmDataTimeout time.Duration `env:"FARMDATA_TIMEOUT,default=10s"`

	SessionSecret string        `env:"SESSION_SECRET,default=dev-secret-change"`
	SessionTTL    time.Duration `env:"SESSION_TTL,default=24h"`

	PaymentDelay time.Duration `env:"PAYMENT_DELAY,default=1200ms"`

	ReminderThreshold time.Duration `env:"REMINDER_THRESHOLD,default=1h"`
	ReminderPoll      time.Duration `env:"REMINDER_POLL,default=60s"`

	LoginRate  float64 `env:"LOGIN_RATE,default=5"`
	LoginBurst int     `env:"LOGIN_BURST,default=10"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
	AppName   string `env:"APP_NAME,default=farm-records"`
}

func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// DevSecret indica si se está usando el secreto de sesión por defecto.
func (c Config) DevSecret() bool {
	return c.SessionSecret == devSessionSecret
}

// Load lee un .env opcional (envFiles, o ".env" si no se pasa ninguno)
// y luego decodifica el entorno. Las variables ya definidas no se pisan.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: decode env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("config: PORT required")
	}
	if c.ReminderThreshold <= 0 || c.ReminderPoll <= 0 {
		return errors.New("config: reminder durations must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	if c.PaymentDelay < 0 {
		return errors.New("config: PAYMENT_DELAY must be >= 0")
	}
	return nil
}
