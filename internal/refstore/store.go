// Package refstore reads and writes reference-table documents on the local
// filesystem, S3 (or S3-compatible stores) and Google Cloud Storage.
package refstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// MaxDocumentSize bounds a single reference document.
const MaxDocumentSize = 16 << 20

// ErrNotFound is returned by Get when no document exists at the key.
var ErrNotFound = errors.New("reference document not found")

// Store abstracts blob storage for reference documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}

// Location is a parsed source or destination URI.
type Location struct {
	Scheme string // "file", "s3" or "gs"
	Bucket string
	Key    string
}

// ParseURI splits s3://bucket/key, gs://bucket/key and plain paths. Plain
// paths and file:// URIs resolve to scheme "file" with the path as key.
func ParseURI(uri string) (Location, error) {
	if uri == "" {
		return Location{}, fmt.Errorf("empty location")
	}
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return Location{Scheme: "file", Key: uri}, nil
	}
	switch scheme {
	case "file":
		u, err := url.Parse(uri)
		if err != nil {
			return Location{}, fmt.Errorf("parse %s: %w", uri, err)
		}
		return Location{Scheme: "file", Key: u.Host + u.Path}, nil
	case "s3", "gs":
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
			return Location{}, fmt.Errorf("%s: want %s://bucket/key", uri, scheme)
		}
		return Location{Scheme: scheme, Bucket: bucket, Key: key}, nil
	default:
		return Location{}, fmt.Errorf("%s: unsupported scheme %q", uri, scheme)
	}
}

// String renders the location back as a URI.
func (l Location) String() string {
	if l.Scheme == "file" {
		return l.Key
	}
	return l.Scheme + "://" + l.Bucket + "/" + l.Key
}

// Open returns a Store for loc's backend. S3 settings other than the bucket
// come from cfg.
func Open(ctx context.Context, loc Location, cfg S3Config) (Store, error) {
	switch loc.Scheme {
	case "file":
		return NewLocalStore(""), nil
	case "s3":
		cfg.Bucket = loc.Bucket
		return NewS3Store(ctx, cfg)
	case "gs":
		return NewGCSStore(ctx, loc.Bucket)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", loc.Scheme)
	}
}

// Read fetches the document at uri.
func Read(ctx context.Context, uri string, cfg S3Config) ([]byte, error) {
	loc, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	s, err := Open(ctx, loc, cfg)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Get(ctx, loc.Key)
}

// Write stores data at uri, replacing any existing document.
func Write(ctx context.Context, uri string, data []byte, cfg S3Config) error {
	loc, err := ParseURI(uri)
	if err != nil {
		return err
	}
	s, err := Open(ctx, loc, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Put(ctx, loc.Key, data)
}

func contentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".json":
		return "application/json"
	default:
		return "application/yaml"
	}
}

// LocalStore implements Store using the local filesystem. Keys are paths
// relative to BaseDir, or absolute when BaseDir is empty.
type LocalStore struct {
	BaseDir string
}

// NewLocalStore creates a LocalStore rooted at the given directory.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{BaseDir: baseDir}
}

func (s *LocalStore) path(key string) string {
	if s.BaseDir == "" {
		return filepath.FromSlash(key)
	}
	return filepath.Join(s.BaseDir, filepath.FromSlash(key))
}

// Get reads the file at key.
func (s *LocalStore) Get(ctx context.Context, key string) ([]byte, error) {
	p := s.path(key)
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxDocumentSize {
		return nil, fmt.Errorf("%s: document exceeds %d bytes", p, MaxDocumentSize)
	}
	return os.ReadFile(p)
}

// Put writes the file at key, creating parent directories.
func (s *LocalStore) Put(ctx context.Context, key string, data []byte) error {
	p := s.path(key)
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	return os.WriteFile(p, data, 0o644)
}

func (s *LocalStore) Close() error { return nil }
