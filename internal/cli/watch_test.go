package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qcli "github.com/codalotl/magicstring/internal/q/cli"
)

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestWatch_Rebuilds(t *testing.T) {
	isolate(t)
	writeFiles(t, map[string]string{
		"in.txt":     "hello world",
		"edits.json": `{"edits": [{"op": "overwrite", "start": 0, "end": 5, "content": "howdy"}]}`,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var stderr syncBuffer
	c := &qcli.Context{Context: ctx, In: strings.NewReader(""), Out: &syncBuffer{}, Err: &stderr}
	w := &watcher{c: c, cfg: Config{Color: "auto", Context: 3}, input: "in.txt", script: "edits.json", out: "out.txt", mapPath: "out.txt.map"}

	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()

	readOut := func() string {
		b, _ := os.ReadFile("out.txt")
		return string(b)
	}
	require.Eventually(t, func() bool { return readOut() == "howdy world" }, 5*time.Second, 10*time.Millisecond)
	assert.FileExists(t, "out.txt.map")

	writeFiles(t, map[string]string{"in.txt": "hello there"})
	require.Eventually(t, func() bool { return readOut() == "howdy there" }, 5*time.Second, 10*time.Millisecond)

	// A broken script is reported and the last good output stays.
	writeFiles(t, map[string]string{"edits.json": `{"edits": [{"op": "nope"}]}`})
	require.Eventually(t, func() bool { return strings.Contains(stderr.String(), "unknown op") }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "howdy there", readOut())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
