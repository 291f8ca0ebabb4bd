// Package adapters はsymbollistフィーチャーのスナップショット実装を提供します。
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"crypto_backend/internal/feature/symbollist/domain"
	"crypto_backend/internal/feature/symbollist/domain/entity"
	"crypto_backend/internal/feature/symbollist/usecase"
)

// SnapshotFile はローカルJSONファイルに保存された銘柄スナップショットです。
type SnapshotFile struct {
	path string
}

var (
	_ usecase.CatalogLoader  = (*SnapshotFile)(nil)
	_ usecase.SnapshotWriter = (*SnapshotFile)(nil)
)

// NewSnapshotFile は指定パスのSnapshotFileを生成します。
func NewSnapshotFile(path string) *SnapshotFile {
	return &SnapshotFile{path: path}
}

// Path はスナップショットのファイルパスを返します。
func (s *SnapshotFile) Path() string { return s.path }

// Load はスナップショットを読み込みます。
// ファイルが存在しない・読めない・JSONとして不正・銘柄が0件の場合はErrCatalogUnavailableを返します。
func (s *SnapshotFile) Load(ctx context.Context) ([]entity.Instrument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrCatalogUnavailable, s.path, err)
	}

	var items []entity.Instrument
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrCatalogUnavailable, s.path, err)
	}

	// シンボルが空のエントリは捨て、同じシンボルは最初の1件のみ残す
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, in := range items {
		if in.Symbol == "" {
			continue
		}
		if _, ok := seen[in.Symbol]; ok {
			continue
		}
		seen[in.Symbol] = struct{}{}
		out = append(out, in)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s contains no instruments", domain.ErrCatalogUnavailable, s.path)
	}
	return out, nil
}

// Save はスナップショットを原子的に置き換えます（同じディレクトリの一時ファイルに書いてrename）。
func (s *SnapshotFile) Save(ctx context.Context, instruments []entity.Instrument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(instruments, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return err
	}
	return nil
}
