package ingest

import (
	"log"
	"time"
)

// LogRequest logs an upstream request being made.
func LogRequest(source, method, url string, params map[string]interface{}) {
	if len(params) > 0 {
		log.Printf("[ingest:%s] %s %s params=%v", source, method, url, params)
	} else {
		log.Printf("[ingest:%s] %s %s", source, method, url)
	}
}

// LogResponse logs an upstream response received.
func LogResponse(source string, statusCode int, duration time.Duration) {
	log.Printf("[ingest:%s] response status=%d duration=%dms",
		source, statusCode, duration.Milliseconds())
}

func LogError(source, operation string, err error) {
	log.Printf("[ingest:%s] %s error: %v", source, operation, err)
}

// LogTransform logs the reduction of upstream records to rows.
func LogTransform(source string, inputCount, outputCount int) {
	log.Printf("[ingest:%s] transformed %d -> %d rows", source, inputCount, outputCount)
}

// LogUpsert logs database upsert operations.
func LogUpsert(source string, count int, duration time.Duration) {
	log.Printf("[ingest:%s] upserted %d rows in %dms",
		source, count, duration.Milliseconds())
}
