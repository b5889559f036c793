// Package seed はストアの初期データ（シードスナップショット）を提供する。
//
// 既定のスナップショットはバイナリに埋め込まれている。
// SEED_FILEでJSONまたはYAMLのファイルを指定すると、そちらを使用する。
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hitoshi/teamfeed/internal/model"
)

//go:embed data.json
var defaultSnapshot []byte

// Snapshot はシードデータのスキーマ {posts: Post[], currentUser: User} を表す。
type Snapshot struct {
	Posts       []model.Post `json:"posts" yaml:"posts"`
	CurrentUser *model.User  `json:"currentUser" yaml:"currentUser"`
}

// Default は埋め込みのスナップショットを返す。
func Default() (*Snapshot, error) {
	return Parse(defaultSnapshot, ".json")
}

// Load はpathのスナップショットを読み込む。pathが空の場合は埋め込みのスナップショットを返す。
// 拡張子が.yaml/.ymlの場合はYAML、それ以外はJSONとして解釈する。
func Load(path string) (*Snapshot, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse はデータをextに応じた形式で解釈する。
func Parse(data []byte, ext string) (*Snapshot, error) {
	var snap Snapshot
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse seed json: %w", err)
		}
	}
	if snap.Posts == nil {
		snap.Posts = []model.Post{}
	}
	return &snap, nil
}
