package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/aspxloc/pkg/fsutil"
)

const page = "<%@ Page Language=\"C#\" %>\n<h1>Willkommen</h1>\n"

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "Default.aspx")
		if err := os.WriteFile(path, []byte(page), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != page {
			t.Errorf("content = %q, want %q", got, page)
		}
		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}
		if info.Size != int64(len(page)) {
			t.Errorf("Size = %d, want %d", info.Size, len(page))
		}
		if info.Mode.Perm() != 0o600 {
			t.Errorf("Mode = %o, want %o", info.Mode.Perm(), 0o600)
		}
		if info.ModTime.IsZero() {
			t.Error("ModTime should be set")
		}
	})

	errorTests := []struct {
		name string
		path func(t *testing.T) string
		want error
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "Missing.aspx") },
			want: fsutil.ErrNotFound,
		},
		{
			name: "directory",
			path: func(t *testing.T) string { return t.TempDir() },
			want: fsutil.ErrIsDirectory,
		},
	}

	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := fsutil.ReadFile(context.Background(), tt.path(t))
			if !errors.Is(err, tt.want) {
				t.Fatalf("ReadFile() error = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "Default.aspx")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("ReadFile() error = %v, want context.Canceled", err)
		}
	})
}
