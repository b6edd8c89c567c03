package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/filebridge/pkg/entry"
)

// runServer feeds input through a server and returns the decoded
// responses, one per input line.
func runServer(t *testing.T, b *Bridge, input string) []response {
	t.Helper()

	var out bytes.Buffer
	srv := NewServer(b, strings.NewReader(input), &out)

	require.NoError(t, srv.Serve(context.Background()))

	var responses []response
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var resp response
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServeRequestResponse(t *testing.T) {
	b, base := newTestBridge(t)

	target := filepath.Join(base, "data", "f.txt")
	require.NoError(t, os.WriteFile(target, []byte("hello"), 0644))

	input := `{"id":1,"action":"readAsText","args":["` + target + `",0,5]}` + "\n" +
		`{"id":2,"action":"getMetadata","args":["` + target + `"]}` + "\n"

	responses := runServer(t, b, input)
	require.Len(t, responses, 2)

	assert.Equal(t, uint64(1), responses[0].ID)
	assert.Nil(t, responses[0].Error)
	assert.Equal(t, "hello", responses[0].Result)

	assert.Equal(t, uint64(2), responses[1].ID)
	assert.Nil(t, responses[1].Error)
	md, ok := responses[1].Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), md["size"])
}

func TestServeErrorCarriesOnlyCode(t *testing.T) {
	b, base := newTestBridge(t)

	missing := filepath.Join(base, "data", "missing.txt")
	input := `{"id":7,"action":"readAsText","args":["` + missing + `",0,5]}` + "\n"

	responses := runServer(t, b, input)
	require.Len(t, responses, 1)

	require.NotNil(t, responses[0].Error)
	assert.Equal(t, int(entry.ErrNotFound), *responses[0].Error)
	assert.Nil(t, responses[0].Result)
}

func TestServeMalformedLine(t *testing.T) {
	b, _ := newTestBridge(t)

	input := "this is not json\n" +
		`{"id":2,"action":"requestAllPaths"}` + "\n"

	responses := runServer(t, b, input)
	require.Len(t, responses, 2)

	// Malformed input answers SYNTAX and the stream keeps going
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, int(entry.ErrSyntax), *responses[0].Error)

	assert.Nil(t, responses[1].Error)
	assert.NotNil(t, responses[1].Result)
}

func TestServeSkipsBlankLines(t *testing.T) {
	b, _ := newTestBridge(t)

	input := "\n\n" + `{"id":1,"action":"requestAllPaths"}` + "\n\n"

	responses := runServer(t, b, input)
	require.Len(t, responses, 1)
	assert.Equal(t, uint64(1), responses[0].ID)
}

func TestServeStop(t *testing.T) {
	b, _ := newTestBridge(t)
	srv := NewServer(b, strings.NewReader(""), &bytes.Buffer{})

	require.NoError(t, srv.Stop(context.Background()))
	// Stop is idempotent
	require.NoError(t, srv.Stop(context.Background()))

	require.NoError(t, srv.Serve(context.Background()))
}

func TestServeProtocol(t *testing.T) {
	b, _ := newTestBridge(t)
	srv := NewServer(b, strings.NewReader(""), &bytes.Buffer{})

	assert.Equal(t, "stdio", srv.Protocol())
}
