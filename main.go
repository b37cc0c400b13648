package main

import (
	"log"

	"github.com/cppla/fleetcheck/config"
	"github.com/cppla/fleetcheck/models"
	"github.com/cppla/fleetcheck/routes"
	"github.com/cppla/fleetcheck/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer utils.Logger.Sync()

	db := config.InitDatabase(
		&models.Driver{},
		&models.Checkin{},
		&models.CallRecord{},
		&models.SystemConfig{},
		&models.CallTemplate{},
		&models.OperationLog{},
	)

	if err := models.SeedDefaults(db); err != nil {
		utils.Sugar.Fatalf("seed defaults: %v", err)
	}

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("fleetcheck listening on :%s", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server exited: %v", err)
	}
}
