package e2e_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scrumpoker/internal/api"
	"github.com/mcoot/scrumpoker/internal/factory"
)

// cliRunner manages CLI binary execution for one player
type cliRunner struct {
	binaryPath  string
	serverURL   string
	sessionFile string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "scrumpoker-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/scrumpoker")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath:  binaryPath,
		serverURL:   serverURL,
		sessionFile: filepath.Join(t.TempDir(), "session.json"),
	}
}

// player returns a runner sharing the binary with its own session file
func (r *cliRunner) player(t *testing.T) *cliRunner {
	t.Helper()
	return &cliRunner{
		binaryPath:  r.binaryPath,
		serverURL:   r.serverURL,
		sessionFile: filepath.Join(t.TempDir(), "session.json"),
	}
}

func (r *cliRunner) args(args ...string) []string {
	return append([]string{
		"--server", r.serverURL,
		"--session-file", r.sessionFile,
		"--output", "json",
	}, args...)
}

func (r *cliRunner) run(args ...string) (string, error) {
	cmd := exec.Command(r.binaryPath, r.args(args...)...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// channelListener is a running `listen` process
type channelListener struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	frames  chan string
	stopped bool
}

func (r *cliRunner) listen(t *testing.T) *channelListener {
	t.Helper()

	cmd := exec.Command(r.binaryPath, r.args("listen")...)
	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	cmd.Stderr = os.Stderr
	require.NoError(t, cmd.Start())

	l := &channelListener{
		cmd:    cmd,
		stdin:  stdin,
		frames: make(chan string, 16),
	}
	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			l.frames <- scanner.Text()
		}
		close(l.frames)
	}()

	t.Cleanup(func() {
		if !l.stopped {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
		}
	})
	return l
}

func (l *channelListener) next(t *testing.T) string {
	t.Helper()
	select {
	case frame, ok := <-l.frames:
		require.True(t, ok, "listener exited early")
		return frame
	case <-time.After(5 * time.Second):
		t.Fatal("no frame received in time")
		return ""
	}
}

func (l *channelListener) nextNotification(t *testing.T) notification {
	t.Helper()
	var n notification
	frame := l.next(t)
	require.NoError(t, json.Unmarshal([]byte(frame), &n), "frame: %s", frame)
	return n
}

func (l *channelListener) send(t *testing.T, line string) {
	t.Helper()
	_, err := io.WriteString(l.stdin, line+"\n")
	require.NoError(t, err)
}

// stop interrupts the process, which closes its channel cleanly
func (l *channelListener) stop(t *testing.T) {
	t.Helper()
	require.NoError(t, l.cmd.Process.Signal(os.Interrupt))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-l.frames:
			if !ok {
				l.stopped = true
				require.NoError(t, l.cmd.Wait())
				return
			}
		case <-deadline:
			t.Fatal("listener did not exit in time")
		}
	}
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	app      *factory.App
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:   logger,
		Presence: app.PresenceService,
		Channels: app.ChannelHandler,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		app:  app,
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = app.Close()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

func (ts *testServer) waitForChannels(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return ts.app.Registry.Count() == n
	}, 5*time.Second, 20*time.Millisecond)
}

// Response types for JSON parsing
type joinResponse struct {
	Message  string `json:"message"`
	PlayerID string `json:"playerId"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type participantResponse struct {
	ID           string `json:"id"`
	PlayerName   string `json:"playerName"`
	RoomName     string `json:"roomName"`
	ConnectionID string `json:"connectionId"`
}

type voteResponse struct {
	PlayerID   string          `json:"playerId"`
	PlayerName string          `json:"playerName"`
	CardValue  json.RawMessage `json:"cardValue"`
	CardTitle  string          `json:"cardTitle"`
}

type notification struct {
	Action    string          `json:"action"`
	Name      string          `json:"name"`
	ID        string          `json:"id"`
	CardValue json.RawMessage `json:"cardValue"`
	CardTitle string          `json:"cardTitle"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func (r *cliRunner) join(t *testing.T, name string) joinResponse {
	t.Helper()

	output, err := r.run("join", "--name", name, "--room", "sprint1", "--secret", "abc")
	require.NoError(t, err, "output: %s", output)

	var resp joinResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	return resp
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_JoinAndList(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	alice := newCLIRunner(t, ts.addr)
	bob := alice.player(t)

	aliceJoin := alice.join(t, "Alice")
	assert.Equal(t, "Player entered the game!", aliceJoin.Message)
	assert.NotEmpty(t, aliceJoin.PlayerID)

	bobJoin := bob.join(t, "Bob")

	output, err := alice.run("join", "--name", "Carol", "--room", "other")
	require.NoError(t, err, "output: %s", output)

	output, err = alice.run("players", "--room", "sprint1", "--secret", "abc")
	require.NoError(t, err, "output: %s", output)

	var players []participantResponse
	require.NoError(t, json.Unmarshal([]byte(output), &players))
	require.Len(t, players, 2)
	// Newest first
	assert.Equal(t, bobJoin.PlayerID, players[0].ID)
	assert.Equal(t, aliceJoin.PlayerID, players[1].ID)
	assert.Empty(t, players[0].ConnectionID)

	output, err = alice.run("players")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &players))
	assert.Len(t, players, 3)
}

func TestCLI_RoomRound(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	alice := newCLIRunner(t, ts.addr)
	bob := alice.player(t)

	aliceJoin := alice.join(t, "Alice")
	bobJoin := bob.join(t, "Bob")

	// Alice connects first, so she hears Bob arrive
	aliceListener := alice.listen(t)
	ts.waitForChannels(t, 1)

	bobListener := bob.listen(t)
	ts.waitForChannels(t, 2)

	joined := aliceListener.nextNotification(t)
	assert.Equal(t, "player-join", joined.Action)
	assert.Equal(t, "Bob", joined.Name)
	assert.Equal(t, bobJoin.PlayerID, joined.ID)

	// Bob votes over the JSON API
	output, err := bob.run("vote", "--card", "5")
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "Vote accepted!", msg.Message)

	voted := aliceListener.nextNotification(t)
	assert.Equal(t, "player-vote", voted.Action)
	assert.Equal(t, "Bob", voted.Name)
	assert.JSONEq(t, `5`, string(voted.CardValue))
	assert.Equal(t, "5", voted.CardTitle)

	// Alice starts a new round over her channel
	aliceListener.send(t, "/new")
	round := bobListener.nextNotification(t)
	assert.Equal(t, "new", round.Action)
	assert.Equal(t, "Alice", round.Name)
	assert.Equal(t, aliceJoin.PlayerID, round.ID)

	// Free text arrives verbatim
	aliceListener.send(t, "hello team")
	assert.Equal(t, "hello team", bobListener.next(t))

	// Bob leaves
	bobListener.stop(t)

	left := aliceListener.nextNotification(t)
	assert.Equal(t, "player-disconnect", left.Action)
	assert.Equal(t, "Bob", left.Name)
	ts.waitForChannels(t, 1)

	output, err = alice.run("players", "--room", "sprint1", "--secret", "abc")
	require.NoError(t, err, "output: %s", output)
	var players []participantResponse
	require.NoError(t, json.Unmarshal([]byte(output), &players))
	require.Len(t, players, 1)
	assert.Equal(t, "Alice", players[0].PlayerName)

	// The vote history outlives the voter
	output, err = alice.run("votes")
	require.NoError(t, err, "output: %s", output)
	var votes []voteResponse
	require.NoError(t, json.Unmarshal([]byte(output), &votes))
	require.Len(t, votes, 1)
	assert.Equal(t, "Bob", votes[0].PlayerName)
	assert.Equal(t, bobJoin.PlayerID, votes[0].PlayerID)

	aliceListener.stop(t)
	ts.waitForChannels(t, 0)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Vote without a session
	output, err := cli.run("vote", "--card", "3")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "run join first")

	// Missing room name is rejected by the server
	output, err = cli.run("join", "--name", "Alice", "--room", "")
	assert.Error(t, err)
	assert.Contains(t, output, "Error! Required JSON fields missing: roomName")

	// Unknown player cannot open a channel
	output, err = cli.run("listen", "--id", "nope", "--name", "Nobody")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "player not found")

	// Joined but never connected: vote is refused
	cli.join(t, "Alice")
	output, err = cli.run("vote", "--card", "?")
	assert.Error(t, err)
	assert.Contains(t, output, "VOTER_NOT_CONNECTED")
}
