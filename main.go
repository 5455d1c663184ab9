package main

import (
	"log"
	"net/http"
	"time"

	"cinemood/config"
	"cinemood/handlers"
	"cinemood/services/recommender"
	"cinemood/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[startup] %v", err)
	}

	svc := recommender.NewService(cfg)

	r := utils.NewRouter()
	handlers.NewRecommenderHandler(svc).Register(r)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("[startup] cinemood listening on %s (region=%s, model=%s)", addr, cfg.WatchRegion, cfg.OpenAIModel)
	log.Fatal(srv.ListenAndServe())
}
