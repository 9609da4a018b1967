package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"git.thinkinpower.net/cardtype/bdata"
	"git.thinkinpower.net/cardtype/config"
	"git.thinkinpower.net/cardtype/data"
	"git.thinkinpower.net/cardtype/middleware"
	"git.thinkinpower.net/cardtype/route"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

func setMode(mode string) {
	switch mode {
	case data.RunModeDev:
		gin.SetMode(gin.DebugMode)
	case data.RunModeTest:
		gin.SetMode(gin.TestMode)
	case data.RunModeRelease:
		gin.SetMode(gin.ReleaseMode)
	}
}

func loadConfig() (*config.Config, error) {
	configFile := flag.String("c", "", "-c /etc/cardtype/config.yaml")
	port := flag.Int("p", 0, "-p 8080")
	mode := flag.String("m", "", "-m [dev|test|release]")
	dataDir := flag.String("d", "", "-d /home/testuser/bindata")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return nil, err
		}
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *dataDir != "" {
		cfg.BinData.DataDir = *dataDir
		cfg.BinData.Watch = true
	}
	return cfg, cfg.Validate()
}

func main() {
	logger.SetFormatter(&logger.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logger.InfoLevel)

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatalf("load config failed: %s", err)
	}
	if level, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		logger.Warnf("invalid log level %s, using info", cfg.LogLevel)
	} else {
		logger.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err = bdata.SetBinDatabaseMode(cfg.BinData.Mode, bdata.BinDataConfig{DataDir: cfg.BinData.DataDir}); err != nil {
		logger.Fatalf("load bin data failed: %s", err)
	}
	if cfg.BinData.DataDir != "" && cfg.BinData.Watch {
		go func() {
			if err := bdata.WatchBinDataDir(ctx, cfg.BinData.DataDir); err != nil {
				logger.Errorf("watch bin data directory failed: %s", err)
			}
		}()
	}

	//启动http服务
	logger.Info("启动http服务...")
	setMode(cfg.Mode)
	r := gin.New()
	r.Use(middleware.Log())
	r.Use(middleware.Recovery())
	route.Register(r)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}
	go func() {
		logger.Infof("启动http服务成功, port: %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down Server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server Shutdown failure.", err)
	}
	logger.Info("Server exit.")
}
