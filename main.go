package main

import (
	"context"
	"fmt"
	"log"
	_ "net/http/pprof"
	"os"

	"github.com/restoreflow/vapi-sheets-webhook/configmanager"
	"github.com/restoreflow/vapi-sheets-webhook/newrelic"
	"github.com/restoreflow/vapi-sheets-webhook/sheetstore"
	"github.com/restoreflow/vapi-sheets-webhook/vapiclient"
	"github.com/restoreflow/vapi-sheets-webhook/vlogger"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	nrecho "github.com/newrelic/go-agent/v3/integrations/nrecho-v3"
	echopprof "github.com/sevenNt/echo-pprof"
)

var host = "0.0.0.0"

func main() {
	// Initilize the config
	if err := configmanager.InitConfig(); err != nil {
		log.Fatalf("Error while initializing the config. Error: [%#v]", err)
	}

	// Initialize the logger
	if err := vlogger.InitLogger(configmanager.ConfStore.LoggerConf); err != nil {
		log.Fatalf("Failed to initialize the logger. Err: [%#v]", err)
	}

	// Initialize new relic app
	if err := newrelic.InitNewRelicApp(); err != nil {
		vlogger.LogErrorf("Init", "Error while initializing new relic app. Error: [%#v]", err)
	}

	e := echo.New()
	// Set the middlewares
	if newrelic.App != nil {
		e.Use(nrecho.Middleware(newrelic.App))
	}
	e.Use(middleware.Secure())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1024KB"))
	e.Use(middleware.RemoveTrailingSlash())
	e.Use(middleware.LoggerWithConfig(middleware.DefaultLoggerConfig))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the Google Sheets service. A failed init is not fatal,
	// appends will fail into the failure journal until it recovers.
	if err := sheetstore.InitSheetsService(ctx); err != nil {
		vlogger.LogCriticalf("Init", "Failed to initialize the Sheets service. Error: [%#v]", err)
	}

	// Initialize the Vapi API HTTP client
	vapiclient.InitVapiClient()

	// Adding routes
	AddRoutes(e)

	// Add pprof
	echopprof.Wrap(e)

	port := configmanager.ConfStore.Port
	vlogger.LogInfof("HTTPHandler", "Listening for requests on port %s", port)
	if err := e.Start(fmt.Sprintf("%s:%s", host, port)); err != nil {
		vlogger.LogCritical("HTTPHandler", "Failed to start server!", err)
		os.Exit(1)
	}
}
