package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/metadb"

	"github.com/enclavegrants/grantledger/config"
	"github.com/enclavegrants/grantledger/ledger"
	"github.com/enclavegrants/grantledger/log"
	"github.com/enclavegrants/grantledger/oracle"
	"github.com/enclavegrants/grantledger/service"
	"github.com/enclavegrants/grantledger/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	flag.StringVar(&cfg.APIHost, "host", cfg.APIHost, "API listen host")
	flag.IntVar(&cfg.APIPort, "port", cfg.APIPort, "API listen port")
	flag.StringVar(&cfg.DataDir, "dataDir", cfg.DataDir, "data directory")
	flag.StringVar(&cfg.LogLevel, "logLevel", cfg.LogLevel, "log level (debug, info, warn, error)")
	flag.StringVar(&cfg.Owner, "owner", cfg.Owner, "initial owner address (hex)")
	flag.Parse()

	log.Init(cfg.LogLevel, "stdout", nil)

	if !common.IsHexAddress(cfg.Owner) {
		log.Fatalf("missing or invalid owner address %q", cfg.Owner)
	}
	owner := common.HexToAddress(cfg.Owner)
	identity := owner
	if cfg.Identity != "" {
		if !common.IsHexAddress(cfg.Identity) {
			log.Fatalf("invalid identity address %q", cfg.Identity)
		}
		identity = common.HexToAddress(cfg.Identity)
	}

	database, err := metadb.New(db.TypePebble, filepath.Join(cfg.DataDir, "db"))
	if err != nil {
		log.Fatalf("cannot open database: %v", err)
	}
	store := storage.New(database)
	defer store.Close()

	if !cfg.DevEngine {
		log.Fatalf("no external engine configured and dev engine disabled")
	}
	engine := oracle.NewMockEngine(1)

	l, err := ledger.New(ledger.Config{
		Store:    store,
		Engine:   engine,
		Owner:    owner,
		Identity: identity,
	})
	if err != nil {
		log.Fatalf("cannot open ledger: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	apiService := service.NewAPI(l, cfg.APIHost, cfg.APIPort)
	if err := apiService.Start(ctx); err != nil {
		log.Fatalf("cannot start API service: %v", err)
	}
	defer apiService.Stop()

	oracleService := service.NewOracle(engine, l, cfg.DevEngineInterval)
	if err := oracleService.Start(ctx); err != nil {
		log.Fatalf("cannot start oracle service: %v", err)
	}
	defer oracleService.Stop()

	log.Infow("grantledger running",
		"host", cfg.APIHost,
		"port", cfg.APIPort,
		"owner", owner.Hex(),
		"devEngine", cfg.DevEngine,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Infof("shutting down")
}
