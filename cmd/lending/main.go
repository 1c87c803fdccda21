package main

import (
	stdLog "log"
	"os"
	"time"

	"github.com/Astemirdum/home-library/lending/app"
	"github.com/Astemirdum/home-library/lending/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// @title       Home Library API
// @version     1.0.0
// @description Multi-branch book lending catalog.
// @BasePath    /
// @securityDefinitions.apikey Bearer
// @in   header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	app.Run(cfg)
}
