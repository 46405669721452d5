// Package project locates engine projects on disk and translates between
// res:// resource paths and filesystem paths.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdtext/gdtext/debug"
)

const (
	// Marker is the file which marks the root directory of a project.
	Marker = "project.godot"
	// Scheme prefixes resource paths.
	Scheme = "res://"
)

// ErrValue reports a path which is not a resource path or lies outside the
// project.
var ErrValue = errors.New("bad resource path")

// FindRoot returns the closest directory at or above start containing the
// project marker. start may be a file. It returns "" if there is none.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	dir := abs
	if fi, err := os.Stat(abs); err == nil && !fi.IsDir() {
		dir = filepath.Dir(abs)
	}
	for {
		fi, err := os.Stat(filepath.Join(dir, Marker))
		if err == nil && !fi.IsDir() {
			if debug.Load() {
				debug.Logf("project root for %s: %s", start, dir)
			}
			return dir, nil
		}
		next := filepath.Dir(dir)
		if next == dir {
			return "", nil
		}
		dir = next
	}
}

// ResToFile maps res://a/b.tscn to root/a/b.tscn.
func ResToFile(root, res string) (string, error) {
	if !strings.HasPrefix(res, Scheme) {
		return "", fmt.Errorf("%w: %q is not a resource path", ErrValue, res)
	}
	rel := strings.TrimPrefix(res, Scheme)
	parts := strings.Split(rel, "/")
	p := filepath.Join(append([]string{root}, parts...)...)
	if within, err := filepath.Rel(root, p); err != nil || escapes(within) {
		return "", fmt.Errorf("%w: %q is outside %q", ErrValue, res, root)
	}
	return p, nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// FileToRes maps a filesystem path under root to its resource path.
func FileToRes(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValue, err)
	}
	if escapes(rel) {
		return "", fmt.Errorf("%w: %q is outside %q", ErrValue, path, root)
	}
	return Scheme + filepath.ToSlash(rel), nil
}

// FSLoader reads resources from the project rooted at Root.
type FSLoader struct {
	Root string
}

func (l *FSLoader) Load(res string) ([]byte, error) {
	p, err := ResToFile(l.Root, res)
	if err != nil {
		return nil, err
	}
	if debug.Load() {
		debug.Logf("loading %s from %s", res, p)
	}
	return os.ReadFile(p)
}

// MapLoader serves resources from memory, keyed by resource path.
type MapLoader map[string]string

func (m MapLoader) Load(res string) ([]byte, error) {
	d, ok := m[res]
	if !ok {
		return nil, fmt.Errorf("%s: %w", res, os.ErrNotExist)
	}
	return []byte(d), nil
}
