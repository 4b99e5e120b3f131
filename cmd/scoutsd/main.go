package main

import (
	"context"
	"net/http"

	"hsportal-backend/lib/configutil"
	"hsportal-backend/lib/configutil/configsqlite"
	"hsportal-backend/lib/llmextract"
	"hsportal-backend/lib/scrapers/staffpage"
	"hsportal-backend/lib/serviceutil"
	"hsportal-backend/lib/telemetry"
	"hsportal-backend/lib/urlresolver"
	"hsportal-backend/services/scouts"
	scoutsdb "hsportal-backend/services/scouts/db"
)

type Config struct {
	Database  configsqlite.Struct `json:"database"`
	Anthropic llmextract.Config   `json:"anthropic"`
	// static bearer token for the http api, empty disables auth
	AccessToken string `json:"access_token"`
	Port        int    `json:"port"`
	// programs per tier per hourly tick
	BatchLimit int64 `json:"batch_limit"`
	Debug      bool  `json:"debug"`
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8777
	}
	if config.BatchLimit == 0 {
		config.BatchLimit = 10
	}

	telemetry.InitSlog(config.Debug)

	db, err := config.Database.OpenDB()
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}
	_, err = db.Exec(scoutsdb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to apply schema", err)
	}

	err = telemetry.SetupFromEnv(ctx, "scoutsd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer telemetry.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	pageClient := staffpage.NewClient()
	service := scouts.NewService(db, scouts.Options{
		Fetcher:   pageClient,
		Validator: pageClient,
		Extractor: llmextract.NewClient(config.Anthropic),
		Resolver:  urlresolver.NewResolver(),
	})

	go service.RunDaemon(ctx, config.BatchLimit)

	mux := http.NewServeMux()
	service.RegisterHandlers(mux)

	authed := http.NewServeMux()
	authed.Handle("/", serviceutil.VerifyAccessToken(config.AccessToken, mux))
	go serviceutil.StartHttpServer(config.Port, authed)

	<-ctx.Done()
}
