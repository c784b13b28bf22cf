package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Supabase SupabaseConfig
	Redis    RedisConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SupabaseConfig datos de conexión al data API remoto.
// La misma key se envía como apikey y como Bearer token.
type SupabaseConfig struct {
	URL string
	Key string
}

// RedisConfig cache opcional del catálogo. Addr vacío = deshabilitado.
type RedisConfig struct {
	Addr string
	TTL  time.Duration
}

// Enabled indica si el cache Redis está configurado.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo .env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, SUPABASE_URL, SUPABASE_KEY, PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración .env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// Bind de variables de entorno
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// PORT pelado (estilo PaaS) tiene prioridad sobre HTTP_PORT si está definido
	port := getInt(v, "HTTP_PORT", 3000)
	if v.IsSet("PORT") {
		port = getInt(v, "PORT", port)
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "almacen-web"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: port,
		},
		Supabase: SupabaseConfig{
			URL: getString(v, "SUPABASE_URL", ""),
			Key: getString(v, "SUPABASE_KEY", ""),
		},
		Redis: RedisConfig{
			Addr: getString(v, "REDIS_ADDR", ""),
			TTL:  time.Duration(getInt(v, "REDIS_TTL_SECONDS", 30)) * time.Second,
		},
	}

	if cfg.Supabase.URL == "" || cfg.Supabase.Key == "" {
		return nil, fmt.Errorf("SUPABASE_URL y SUPABASE_KEY son requeridos")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
