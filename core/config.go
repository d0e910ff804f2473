package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *viper.Viper

func init() {
	Conf = viper.New()

	// defaults
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("debug", true)
	Conf.SetDefault("appName", "Colegio")
	Conf.SetDefault("secretKey", "h&2m)p0q-xye5_v#colegio9(z8w!u4r$t7k")
	Conf.SetDefault("serverAddress", ":8000")
	Conf.SetDefault("sessionCookie", "colegio_session")
	Conf.SetDefault("sessionTTL", 24*time.Hour)
	Conf.SetDefault("sessionBackend", "redis") // redis | memory
	Conf.SetDefault("redisAddress", "localhost:6379")
	Conf.SetDefault("redisDB", 0)
	Conf.SetDefault("database.engine", "postgres")
	Conf.SetDefault("database.host", "localhost")
	Conf.SetDefault("database.port", "5432")
	Conf.SetDefault("database.name", "colegio_db")
	Conf.SetDefault("database.user", "postgres")
	Conf.SetDefault("database.password", "postgres")
	Conf.SetDefault("database.disableTLS", true)
	Conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case strings.ToUpper("TEST"):
		Conf.SetDefault("testMode", true)
	}
	Conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	Conf.AutomaticEnv()
}
