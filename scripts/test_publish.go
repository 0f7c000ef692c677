// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type PositionEvent struct {
	SessionID uuid.UUID `json:"session_id"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Bearing   *float64  `json:"bearing,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	sessionID := flag.String("session", "", "Navigation session ID")
	lat := flag.Float64("lat", 53.5225, "Latitude")
	lon := flag.Float64("lon", 8.1083, "Longitude")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	id := uuid.New()
	if *sessionID != "" {
		parsed, err := uuid.Parse(*sessionID)
		if err != nil {
			log.Fatalf("Invalid session ID: %v", err)
		}
		id = parsed
	}

	event := PositionEvent{
		SessionID: id,
		Lat:       *lat,
		Lon:       *lon,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:navigation:position",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Position published successfully!\n")
	fmt.Printf("   Stream: stream:navigation:position\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Session ID: %s\n", event.SessionID)
	fmt.Printf("   Coordinates: %.6f, %.6f\n", event.Lat, event.Lon)

	// Ожидание ответа
	fmt.Printf("\n⏳ Waiting for response in stream:navigation:frames...\n")

	deadline := time.Now().Add(10 * time.Second)
	lastID := "$"

	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{"stream:navigation:frames", lastID},
			Count:   1,
			Block:   time.Second,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			log.Fatalf("Failed to read frames stream: %v", err)
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				fmt.Printf("\n📍 Navigation frame received (ID %s):\n", msg.ID)
				if data, ok := msg.Values["data"].(string); ok {
					fmt.Println(data)
				}
				return
			}
		}
	}

	fmt.Printf("⚠️ No frame received within 10s (is the worker running?)\n")
}
