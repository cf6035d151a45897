package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/evadvisor/internal/model"
)

// Handler answers one message
type Handler interface {
	Handle(message string, role model.Role) model.Reply
}

// MessageJob represents one message of a batch
type MessageJob struct {
	Index   int
	Message string
	Role    model.Role
	Handler Handler
}

// Execute executes the message job
func (j *MessageJob) Execute(ctx context.Context) *BatchResult {
	if err := ctx.Err(); err != nil {
		return &BatchResult{Index: j.Index, Message: j.Message, Error: err}
	}
	reply := j.Handler.Handle(j.Message, j.Role)
	return &BatchResult{Index: j.Index, Message: j.Message, Reply: &reply}
}

// BatchResult represents the result of a message job
type BatchResult struct {
	Index   int
	Message string
	Reply   *model.Reply
	Error   error
}

// BatchProcessor answers many messages concurrently
type BatchProcessor struct {
	handler     Handler
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(handler Handler, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		handler:     handler,
		concurrency: concurrency,
	}
}

// ProcessMessages answers messages concurrently. Results come back in input
// order; messages not reached before ctx ends carry ctx's error.
func (b *BatchProcessor) ProcessMessages(ctx context.Context, messages []string, role model.Role) []*BatchResult {
	if len(messages) == 0 {
		return []*BatchResult{}
	}

	pool := NewPool[*BatchResult](ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, msg := range messages {
			job := &MessageJob{
				Index:   i,
				Message: msg,
				Role:    role,
				Handler: b.handler,
			}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	results := make([]*BatchResult, len(messages))
	for result := range pool.Results() {
		results[result.Index] = result
	}

	for i, r := range results {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			results[i] = &BatchResult{Index: i, Message: messages[i], Error: err}
		}
	}

	return results
}

// ProcessFile reads messages from a file and answers them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, role model.Role) ([]*BatchResult, error) {
	messages, err := ReadMessagesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}

	return b.ProcessMessages(ctx, messages, role), nil
}

// ReadMessagesFromFile reads messages from a file (one per line).
// Blank lines and lines starting with # are skipped; duplicates are dropped.
func ReadMessagesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var messages []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			messages = append(messages, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return messages, nil
}
