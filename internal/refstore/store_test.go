package refstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorePutGet(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)
	ctx := context.Background()

	data := []byte("version: test\n")
	if err := s.Put(ctx, "tables/2024/factors.yaml", data); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "tables/2024/factors.yaml")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Get = %q, want %q", got, data)
	}

	expectedPath := filepath.Join(dir, "tables", "2024", "factors.yaml")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalStoreGetNotFound(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	_, err := s.Get(context.Background(), "missing.yaml")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReadWriteLocalPath(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "factors.yaml")

	if err := Write(ctx, path, []byte("a: 1\n"), S3Config{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(ctx, path, S3Config{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "a: 1\n" {
		t.Errorf("Read = %q", got)
	}

	got, err = Read(ctx, "file://"+filepath.ToSlash(path), S3Config{})
	if err != nil {
		t.Fatalf("Read file URI: %v", err)
	}
	if string(got) != "a: 1\n" {
		t.Errorf("Read file URI = %q", got)
	}
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    Location
		wantErr bool
	}{
		{uri: "factors.yaml", want: Location{Scheme: "file", Key: "factors.yaml"}},
		{uri: "/etc/esgcore/factors.yaml", want: Location{Scheme: "file", Key: "/etc/esgcore/factors.yaml"}},
		{uri: "file:///tmp/f.yaml", want: Location{Scheme: "file", Key: "/tmp/f.yaml"}},
		{uri: "s3://esg-ref/tables/factors.yaml", want: Location{Scheme: "s3", Bucket: "esg-ref", Key: "tables/factors.yaml"}},
		{uri: "gs://esg-ref/factors.json", want: Location{Scheme: "gs", Bucket: "esg-ref", Key: "factors.json"}},
		{uri: "", wantErr: true},
		{uri: "s3://bucket-only", wantErr: true},
		{uri: "s3://bucket/dir/", wantErr: true},
		{uri: "gs:///key", wantErr: true},
		{uri: "ftp://host/f.yaml", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.uri, func(t *testing.T) {
			got, err := ParseURI(tc.uri)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseURI(%q) = %+v, want error", tc.uri, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseURI(%q) = %+v, want %+v", tc.uri, got, tc.want)
			}
		})
	}
}

func TestLocationString(t *testing.T) {
	for _, uri := range []string{"s3://b/k/f.yaml", "gs://b/f.yaml", "local/f.yaml"} {
		loc, err := ParseURI(uri)
		if err != nil {
			t.Fatalf("ParseURI(%q): %v", uri, err)
		}
		if loc.String() != uri {
			t.Errorf("String() = %q, want %q", loc.String(), uri)
		}
	}
}

func TestContentType(t *testing.T) {
	if got := contentType("a/factors.JSON"); got != "application/json" {
		t.Errorf("contentType(json) = %q", got)
	}
	if got := contentType("a/factors.yaml"); got != "application/yaml" {
		t.Errorf("contentType(yaml) = %q", got)
	}
}
