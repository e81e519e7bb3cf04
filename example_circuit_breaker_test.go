package kvline_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/pior/kvline"
)

func ExampleNewCircuitBreakerConfig() {
	config := kvline.DefaultConfig()
	config.NewCircuitBreaker = kvline.NewCircuitBreakerConfig(
		1,              // maxRequests in half-open state
		time.Minute,    // interval to reset failure counts
		10*time.Second, // timeout before transitioning to half-open
	)

	client, err := kvline.New(config)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := client.Connect(ctx); err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	_, err = client.Set(ctx, "user:123", "John")
	if kvline.IsConnectionFailure(err) && client.BreakerState() == gobreaker.StateOpen {
		fmt.Println("server unavailable, failing fast")
	}

	fmt.Printf("Server: %s, Circuit: %s\n", client.Addr(), client.BreakerState())
}
