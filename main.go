package main

import (
	"fmt"
	"net/http"

	"github.com/go-redis/redis"

	"github.com/loverfish/Social-network/config"
	"github.com/loverfish/Social-network/db"
	"github.com/loverfish/Social-network/log"
	"github.com/loverfish/Social-network/router"
)

func main() {
	log.Info.Printf("Starting Social Network...\n")

	cfg := config.Load()

	dbs, err := db.Init(cfg.PostgresURL)
	if err != nil {
		log.Error.Fatalf("%v: %s", err, err)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Error.Fatalf("%v: %s", err, err)
	}
	rclient := redis.NewClient(opts)
	if err := rclient.Ping().Err(); err != nil {
		log.Error.Fatalf("%v: %s", err, err)
	}

	r := router.Init(dbs, db.NewSessions(rclient), db.NewPageCache(rclient), cfg.MediaDir)

	err = http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r)
	if err != nil {
		log.Error.Fatalf("%v: %s", err, err)
	}
}
