package main

import (
	"context"
	"net/http"
	"time"

	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/AdelereKehinde/Estate-management/internal/app"
	"github.com/AdelereKehinde/Estate-management/internal/config"
	"github.com/AdelereKehinde/Estate-management/internal/constants"
	"github.com/AdelereKehinde/Estate-management/internal/routes"
	"github.com/AdelereKehinde/Estate-management/internal/services"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize estate-service:", err)
	}
	defer application.Close()

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedTestData(context.Background(), application.Store); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		} else {
			utils.Logger.Info("Seeded test data successfully")
		}
	}

	router := routes.NewRouter(application)

	if cfg.LDFlag_OverdueReportCron {
		overdueReport := services.NewOverdueReportService(application.Store)

		c := cron.New(cron.WithLocation(time.UTC))
		_, cronErr := c.AddFunc(constants.OverdueReportCronSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), constants.OverdueReportJobTimeout)
			defer cancel()
			if _, e := overdueReport.Run(ctx); e != nil {
				utils.Logger.WithError(e).Error("Scheduled overdue invoice report failed")
			}
		})
		if cronErr != nil {
			utils.Logger.WithError(cronErr).Fatal("Failed to schedule overdue invoice report cron")
		}
		c.Start()
		defer c.Stop()
	}

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, constants.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("estate-service failed to start:", err)
	}
}
