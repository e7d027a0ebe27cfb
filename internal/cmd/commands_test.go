package cmd_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Alia5/serialpad/internal/cmd"
	"github.com/Alia5/serialpad/internal/log"
	"github.com/Alia5/serialpad/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/Alia5/serialpad/internal/registry" // Register built-in routines
)

var dryRun = transport.Config{DryRun: true}

func TestRunExecute(t *testing.T) {
	r := &cmd.Run{Routine: "press_a", Serial: dryRun, NoKeys: true}
	require.NoError(t, r.Execute(context.Background(), slog.Default(), log.NewRaw(nil)))

	r = &cmd.Run{Routine: "no_such_routine", Serial: dryRun, NoKeys: true}
	assert.ErrorContains(t, r.Execute(context.Background(), slog.Default(), log.NewRaw(nil)), "unknown routine")
}

func TestRunExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	r := &cmd.Run{Routine: "mash_a", Serial: dryRun, NoKeys: true}
	done := make(chan error, 1)
	go func() { done <- r.Execute(ctx, slog.Default(), log.NewRaw(nil)) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancellation")
	}
}

func TestSendExecute(t *testing.T) {
	s := &cmd.Send{Rows: []string{"0x0010 8", "0x0000 8", "end"}, Check: true, Serial: dryRun}
	require.NoError(t, s.Execute(context.Background(), slog.Default(), log.NewRaw(nil)))

	s = &cmd.Send{Rows: []string{"garbage"}, Check: true, Serial: dryRun}
	assert.Error(t, s.Execute(context.Background(), slog.Default(), log.NewRaw(nil)))
}

func TestSendStopsBetweenRows(t *testing.T) {
	rows := make([]string, 50)
	for i := range rows {
		rows[i] = "0x0010 8"
	}
	out := &lineBuffer{}
	s := &cmd.Send{Rows: rows, Interval: 20 * time.Millisecond, Serial: dryRun, Out: out}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	start := time.Now()
	require.NoError(t, s.Execute(ctx, slog.Default(), log.NewRaw(nil)))

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	lines := out.Lines()
	assert.Less(t, len(lines), len(rows))
	assert.Equal(t, "end", lines[len(lines)-1])
}

func TestMcuExecute(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &cmd.Mcu{SyncName: "Mash", Serial: dryRun}
	assert.NoError(t, m.Execute(ctx, slog.Default(), log.NewRaw(nil)))
}

func TestControlExecute(t *testing.T) {
	c := &cmd.Control{Serial: dryRun}
	err := c.Execute(context.Background(), strings.NewReader("jw\x1b"), slog.Default(), log.NewRaw(nil))
	assert.NoError(t, err)

	c = &cmd.Control{Serial: dryRun, Routine: "missing"}
	assert.Error(t, c.Execute(context.Background(), strings.NewReader(""), slog.Default(), log.NewRaw(nil)))
}

// lineBuffer collects dry-run output from several goroutines.
type lineBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lineBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	text := strings.TrimSpace(b.buf.String())
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestControlQuitWhileRoutineRuns(t *testing.T) {
	out := &lineBuffer{}
	in, keysIn := io.Pipe()
	c := &cmd.Control{Serial: dryRun, Routine: "mash_a", Out: out}

	done := make(chan error, 1)
	go func() { done <- c.Execute(context.Background(), in, slog.Default(), log.NewRaw(nil)) }()

	_, err := keysIn.Write([]byte{'\t'})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(out.Lines()) >= 2 }, 5*time.Second, 10*time.Millisecond)

	_, err = keysIn.Write([]byte{0x1b})
	require.NoError(t, err)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("control did not quit")
	}
	_ = keysIn.Close()

	lines := out.Lines()
	require.NotEmpty(t, lines)
	first := slices.Index(lines, "end")
	require.GreaterOrEqual(t, first, 0)
	for _, l := range lines[first:] {
		assert.Equal(t, "end", l, "frame written after the routine ended: %v", lines)
	}
}

func TestListRun(t *testing.T) {
	assert.NoError(t, (&cmd.List{}).Run())
}

func TestWebhook(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, cmd.NewWebhook(srv.URL).Notify(context.Background(), "mash_a started."))
	assert.Equal(t, map[string]string{"message": "mash_a started."}, got)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	assert.Error(t, cmd.NewWebhook(failing.URL).Notify(context.Background(), "x"))
}
