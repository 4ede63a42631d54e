// internal/adapter/storage/local/store.go
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/renatoromeu/mariliaflix/internal/domain"
)

// MediaDirs - директории с медиафайлами относительно корня
var MediaDirs = []string{domain.KindPhoto.Dir(), domain.KindVideo.Dir()}

// Store отдает медиафайлы из локальной директории (или любой afero.Fs).
type Store struct {
	fs afero.Fs
}

// NewStore создает хранилище с корнем в dir.
func NewStore(dir string) *Store {
	return NewStoreFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// NewStoreFs wraps an existing filesystem; tests pass afero.NewMemMapFs.
func NewStoreFs(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// cleanKey rejects keys that escape the media root.
func cleanKey(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: недопустимый ключ %q", domain.ErrMediaNotFound, key)
	}
	return strings.TrimPrefix(clean, "/"), nil
}

// Open открывает файл. Возвращаемое значение также реализует io.Seeker.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	name, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	f, err := s.fs.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMediaNotFound, key)
		}
		return nil, fmt.Errorf("ошибка открытия файла %s: %w", key, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("ошибка чтения метаданных %s: %w", key, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrMediaNotFound, key)
	}
	return f, nil
}

// Files lists every media file under img/ and videos/ as slash-separated keys.
// Missing media directories are skipped.
func (s *Store) Files() ([]string, error) {
	var keys []string
	for _, dir := range MediaDirs {
		exists, err := afero.DirExists(s.fs, dir)
		if err != nil {
			return nil, fmt.Errorf("ошибка проверки директории %s: %w", dir, err)
		}
		if !exists {
			continue
		}

		err = afero.Walk(s.fs, dir, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() || strings.HasPrefix(fi.Name(), ".") {
				return nil
			}
			keys = append(keys, filepath.ToSlash(p))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка обхода директории %s: %w", dir, err)
		}
	}
	return keys, nil
}
