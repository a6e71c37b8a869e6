// Package app provides the core business logic of the food-donation marketplace.
// It coordinates the file-backed resource store for operational data (servings,
// food listings, pickup requests, events, feedback, prediction artifacts), the
// relational account store for users and partnerships, the external model
// trainer, and the chat-completion provider. Logging functionality is provided
// via the logger package.
package app

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/taetu445/RescueBites/internal/chat"
	"github.com/taetu445/RescueBites/internal/pkg/logger"
	"github.com/taetu445/RescueBites/internal/storage"
	"github.com/taetu445/RescueBites/internal/trainer"
)

// Predefined errors returned by the application layer. Handlers translate
// these into HTTP statuses at the boundary.
var (
	// ErrNotFound indicates the target id is not present in the collection.
	ErrNotFound = errors.New("app: not found")
	// ErrMissingFields indicates a required request field was not provided.
	ErrMissingFields = errors.New("app: missing fields")
	// ErrInvalidPayload indicates a structurally invalid request body.
	ErrInvalidPayload = errors.New("app: invalid payload")
	// ErrInvalidPeriod indicates a period parameter outside weekly/monthly.
	ErrInvalidPeriod = errors.New("app: invalid period")
	// ErrInvalidStatus indicates a request-status value outside accepted/rejected.
	ErrInvalidStatus = errors.New("app: invalid status")
	// ErrNotReservable indicates a food item whose status forbids the transition.
	ErrNotReservable = errors.New("app: item cannot be reserved")
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("app: invalid credentials")
)

// App encapsulates the application logic and dependencies required to process requests.
type App struct {
	db      storage.Storage
	files   *storage.FileStore
	trainer trainer.Runner
	chat    chat.Completer
	log     *logger.Logger
}

// NewApp creates and returns a new instance of App with the provided dependencies.
func NewApp(db storage.Storage, files *storage.FileStore, tr trainer.Runner, completer chat.Completer, log *logger.Logger) *App {
	return &App{db: db, files: files, trainer: tr, chat: completer, log: log}
}

// Files exposes the file store, used by the HTTP layer to serve the public mirror.
func (app *App) Files() *storage.FileStore {
	return app.files
}

// todayString returns the current UTC day in YYYY-MM-DD form, the day
// granularity used for serving dates and archive buckets.
func todayString() string {
	return time.Now().UTC().Format("2006-01-02")
}

// nowISO returns the current UTC instant in RFC 3339 form.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// round2 rounds to two decimal places, matching the precision persisted for
// earnings throughout the data files.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// parseLeadingInt extracts the leading integer of a free-form quantity string
// such as "12 kg"; a string with no leading digits counts as zero.
func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
