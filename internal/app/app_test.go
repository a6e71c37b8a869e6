package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taetu445/RescueBites/internal/chat"
	"github.com/taetu445/RescueBites/internal/pkg/logger"
	"github.com/taetu445/RescueBites/internal/storage"
)

type stubTrainer struct {
	err  error
	runs int
}

func (s *stubTrainer) Run(_ context.Context) error {
	s.runs++
	return s.err
}

type stubCompleter struct {
	reply    string
	err      error
	received []chat.Message
}

func (s *stubCompleter) Complete(_ context.Context, messages []chat.Message) (string, error) {
	s.received = messages
	return s.reply, s.err
}

func newTestApp(t *testing.T, db storage.Storage) (*App, *stubTrainer, *stubCompleter) {
	t.Helper()

	l, err := logger.CreateLogger("error")
	require.NoError(t, err)

	files, err := storage.NewFileStore(
		filepath.Join(t.TempDir(), "data"),
		filepath.Join(t.TempDir(), "public"),
		l,
	)
	require.NoError(t, err)

	tr := &stubTrainer{}
	completer := &stubCompleter{reply: "ok"}
	return NewApp(db, files, tr, completer, l), tr, completer
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"12 kg", 12},
		{"  7 plates", 7},
		{"5", 5},
		{"a dozen", 0},
		{"", 0},
	}
	for _, test := range tests {
		require.Equal(t, test.want, parseLeadingInt(test.in), "input %q", test.in)
	}
}
