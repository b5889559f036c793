package teamfeed_test

import (
	"os"
	"strings"
	"testing"
)

func readFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

func TestDockerfileMultiStageBuild(t *testing.T) {
	content := readFile(t, "Dockerfile")

	// マルチステージビルドの確認: ビルドステージと実行ステージが存在すること
	if !strings.Contains(content, "FROM golang:") {
		t.Error("Dockerfile should contain a Go builder stage (FROM golang:)")
	}

	// 最終ステージは軽量イメージであること
	var lastFrom string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "FROM ") {
			lastFrom = trimmed
		}
	}
	if !strings.Contains(lastFrom, "gcr.io/distroless") {
		t.Errorf("final stage should use a distroless image, got: %s", lastFrom)
	}
}

func TestDockerfileCgoEnabled(t *testing.T) {
	content := readFile(t, "Dockerfile")

	// sqliteドライバのためcgoを有効にしてビルドすること
	if !strings.Contains(content, "CGO_ENABLED=1") {
		t.Error("Dockerfile should build with CGO_ENABLED=1")
	}
}

func TestDockerfileEntrypointAndHealthcheck(t *testing.T) {
	content := readFile(t, "Dockerfile")

	if !strings.Contains(content, `ENTRYPOINT ["/app/teamfeed"]`) {
		t.Error("Dockerfile should use the teamfeed binary as ENTRYPOINT")
	}
	if !strings.Contains(content, "healthcheck") {
		t.Error("Dockerfile should run the healthcheck subcommand")
	}
}

func TestDockerComposeServices(t *testing.T) {
	content := readFile(t, "docker-compose.yml")

	// 2コンテナ構成: シード初期化とAPI
	for _, svc := range []string{"init:", "api:"} {
		if !strings.Contains(content, svc) {
			t.Errorf("docker-compose.yml should contain service %q", svc)
		}
	}
	if !strings.Contains(content, "service_completed_successfully") {
		t.Error("api should wait for init to complete")
	}
}

func TestDockerComposePersistentStore(t *testing.T) {
	content := readFile(t, "docker-compose.yml")

	// ストアはボリュームに永続化すること
	if !strings.Contains(content, "store:/data") {
		t.Error("docker-compose.yml should mount the store volume at /data")
	}
}

func TestDockerComposeNetworks(t *testing.T) {
	content := readFile(t, "docker-compose.yml")

	if !strings.Contains(content, "internal: true") {
		t.Error("docker-compose.yml should define an internal network (internal: true)")
	}
}
