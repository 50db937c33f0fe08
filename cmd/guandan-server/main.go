// Command guandan-server hosts Guan Dan matches over HTTP and websockets.
//
// Configuration comes from the environment (a .env file is honored):
//
//	LISTEN_ADDR    address to serve on (default :8080)
//	JWT_SECRET     HMAC secret for client tokens (required)
//	DATABASE_URL   Postgres DSN; empty disables persistence
//	REDIS_ADDR     Redis address; empty disables the live cache
//	REDIS_PASSWORD Redis password (optional)
//	REDIS_DB       Redis database number (default 0)
package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/guandan/internal/cache"
	"github.com/jason-s-yu/guandan/internal/database"
	"github.com/jason-s-yu/guandan/internal/game"
	"github.com/jason-s-yu/guandan/internal/server"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var store game.RecordStore
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		s, err := database.NewMatchStore(ctx, dsn)
		if err != nil {
			log.WithError(err).Fatal("database connection failed")
		}
		defer s.Close()
		store = s
		log.Info("match persistence enabled")
	}

	var live game.LiveCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		c, err := cache.NewLiveStore(ctx, addr, os.Getenv("REDIS_PASSWORD"), db)
		if err != nil {
			log.WithError(err).Fatal("redis connection failed")
		}
		defer c.Close()
		live = c
		log.Info("live cache enabled")
	}

	srv := server.New(log, []byte(secret), store, live)

	listen := os.Getenv("LISTEN_ADDR")
	if listen == "" {
		listen = ":8080"
	}
	log.WithField("addr", listen).Info("listening")
	if err := http.ListenAndServe(listen, srv.Handler()); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
