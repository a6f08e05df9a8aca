// Script to test Langfuse connectivity by publishing a small sample report.
// Usage: go run scripts/langfuse-test/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/blaisecz/meaningful-metrics/internal/config"
	"github.com/blaisecz/meaningful-metrics/internal/domain"
	"github.com/blaisecz/meaningful-metrics/internal/langfuse"
	"github.com/blaisecz/meaningful-metrics/internal/scoring"
)

func main() {
	cfg := config.Load()

	fmt.Println("=== Langfuse Connection Test ===")
	fmt.Printf("Base URL:    %s\n", cfg.LangfuseBaseURL)
	fmt.Printf("Public Key:  %s\n", maskKey(cfg.LangfusePublicKey))
	fmt.Printf("Secret Key:  %s\n", maskKey(cfg.LangfuseSecretKey))
	fmt.Printf("Environment: %s\n", cfg.LangfuseEnv)
	fmt.Println()

	client := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})

	if !client.IsEnabled() {
		log.Fatal("Langfuse client is disabled. Check your env vars.")
	}

	report, err := scoring.GenerateReport(
		[]domain.TimeEntry{{Domain: "reading", Hours: 1.5}, {Domain: "feed", Hours: 0.5}},
		[]domain.DomainPriority{{Domain: "reading", Priority: 1}, {Domain: "feed", Priority: 0.1}},
		[]domain.Goal{{ID: "read", Name: "Read more", Domains: []string{"reading"}}},
		nil,
		domain.PeriodDaily,
	)
	if err != nil {
		log.Fatalf("Failed to build sample report: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	traceID, err := client.PublishReport(ctx, "langfuse-test", report)
	if err != nil {
		log.Fatalf("Failed to publish report: %v", err)
	}

	fmt.Println("✓ Test report published successfully!")
	fmt.Printf("  Trace ID: %s\n", traceID)
	fmt.Printf("  View at:  %s/trace/%s\n", cfg.LangfuseBaseURL, traceID)
}

func maskKey(key string) string {
	if len(key) < 8 {
		if key == "" {
			return "(empty)"
		}
		return "***"
	}
	return key[:8] + "..."
}
