package fsops

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FS is an abstract filesystem used across the app and tests.
type FS interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	Stat(name string) (fs.FileInfo, error)
	Rename(oldpath, newpath string) error
	MkdirAll(path string, perm os.FileMode) error
	Remove(name string) error

	Join(elem ...string) string
	Base(name string) string
	Dir(name string) string
	Ext(name string) string
	Clean(name string) string
}

// ---------- OS-backed implementation ----------

type OS struct{}

func NewOS() OS { return OS{} }

func (OS) ReadFile(name string) ([]byte, error) { return os.ReadFile(filepath.Clean(name)) }
func (OS) WriteFile(name string, b []byte, p os.FileMode) error {
	return os.WriteFile(filepath.Clean(name), b, p)
}
func (OS) Stat(name string) (fs.FileInfo, error)     { return os.Stat(filepath.Clean(name)) }
func (OS) Rename(a, b string) error                  { return os.Rename(a, b) }
func (OS) MkdirAll(path string, p os.FileMode) error { return os.MkdirAll(filepath.Clean(path), p) }
func (OS) Remove(name string) error                  { return os.Remove(filepath.Clean(name)) }

func (OS) Join(elem ...string) string { return filepath.Join(elem...) }
func (OS) Base(name string) string    { return filepath.Base(name) }
func (OS) Dir(name string) string     { return filepath.Dir(name) }
func (OS) Ext(name string) string     { return filepath.Ext(name) }
func (OS) Clean(name string) string   { return filepath.Clean(name) }

// ---------- In-memory implementation (for tests/integration) ----------

type Mem struct{ Fs afero.Fs }

func NewMem() Mem { return Mem{Fs: afero.NewMemMapFs()} }

func (m Mem) ReadFile(name string) ([]byte, error) { return afero.ReadFile(m.Fs, filepath.Clean(name)) }
func (m Mem) WriteFile(name string, b []byte, p os.FileMode) error {
	return afero.WriteFile(m.Fs, filepath.Clean(name), b, p)
}
func (m Mem) Stat(name string) (fs.FileInfo, error) { return m.Fs.Stat(filepath.Clean(name)) }
func (m Mem) Rename(a, b string) error              { return m.Fs.Rename(a, b) }
func (m Mem) MkdirAll(path string, p os.FileMode) error {
	return m.Fs.MkdirAll(filepath.Clean(path), p)
}
func (m Mem) Remove(name string) error { return m.Fs.Remove(filepath.Clean(name)) }

func (Mem) Join(elem ...string) string { return filepath.Join(elem...) }
func (Mem) Base(name string) string    { return filepath.Base(name) }
func (Mem) Dir(name string) string     { return filepath.Dir(name) }
func (Mem) Ext(name string) string     { return filepath.Ext(name) }
func (Mem) Clean(name string) string   { return filepath.Clean(name) }

// WriteFileAtomic writes data through a temporary file and renames it into
// place so a crash mid-write never leaves a truncated target.
func WriteFileAtomic(filesystem FS, path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := filesystem.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := filesystem.Rename(tmp, path); err != nil {
		_ = filesystem.Remove(tmp)
		return err
	}
	return nil
}
