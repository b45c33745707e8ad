package sonarqube

import (
	"context"
	"sync"
	"time"
)

// DefaultBatchConcurrency bounds the calls a BatchExecutor runs at once.
const DefaultBatchConcurrency = 5

// BatchOperation is one call run by a BatchExecutor.
type BatchOperation struct {
	ID  string
	Run func(ctx context.Context, client Client) error
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID       string
	Error    error
	Duration time.Duration
}

// Success reports whether the operation completed without error.
func (r BatchResult) Success() bool {
	return r.Error == nil
}

// BatchExecutor runs independent operations against one client with bounded
// concurrency.
type BatchExecutor struct {
	client      Client
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor. A non-positive concurrency
// selects DefaultBatchConcurrency.
func NewBatchExecutor(client Client, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	return &BatchExecutor{
		client:      client,
		concurrency: concurrency,
		timeout:     DefaultHTTPTimeout,
	}
}

// SetTimeout bounds each operation. Zero disables the per-operation timeout.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs operations and returns their results in input order.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) []BatchResult {
	results := make([]BatchResult, len(operations))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index, operation := range operations {
		waitGroup.Add(1)

		go func(index int, operation BatchOperation) {
			defer waitGroup.Done()

			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			opCtx := ctx

			if b.timeout > 0 {
				var cancel context.CancelFunc

				opCtx, cancel = context.WithTimeout(ctx, b.timeout)
				defer cancel()
			}

			start := time.Now()
			err := operation.Run(opCtx, b.client)

			results[index] = BatchResult{ID: operation.ID, Error: err, Duration: time.Since(start)}
		}(index, operation)
	}

	waitGroup.Wait()

	return results
}

// DeleteWebhooks builds one delete operation per webhook key.
func DeleteWebhooks(keys ...string) []BatchOperation {
	operations := make([]BatchOperation, 0, len(keys))

	for _, key := range keys {
		webhookKey := key

		operations = append(operations, BatchOperation{
			ID: webhookKey,
			Run: func(ctx context.Context, client Client) error {
				return client.DeleteWebhook(ctx, webhookKey)
			},
		})
	}

	return operations
}
