package backend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"toolkeep/internal/netfetch"
	"toolkeep/internal/registry"
)

// Binary fetches standalone release binaries. Re-running an install
// overwrites the same filename, so the effect is idempotent, but the download
// itself is unconditional; there is no freshness check.
type Binary struct {
	Fetcher  netfetch.Fetcher
	Releases netfetch.ReleaseLister
}

// releaseRef is a parsed release-hosting download URL:
// <host>/<owner>/<repo>/releases/download/<tag>/<asset>.
type releaseRef struct {
	Owner string
	Repo  string
	Tag   string
	Asset string
}

// parseReleaseURL recognizes the release-hosting download pattern. The stored
// tag only names the expected asset; what is fetched is always resolved from
// the latest release.
func parseReleaseURL(source string) (releaseRef, bool) {
	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return releaseRef{}, false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) != 6 || segments[2] != "releases" || segments[3] != "download" {
		return releaseRef{}, false
	}
	return releaseRef{
		Owner: segments[0],
		Repo:  segments[1],
		Tag:   segments[4],
		Asset: segments[5],
	}, true
}

func (b *Binary) Install(ctx context.Context, rec registry.Record, dest string) (Result, error) {
	downloadURL := rec.Source
	fileName := ""

	if ref, ok := parseReleaseURL(rec.Source); ok {
		assets, err := b.Releases.LatestRelease(ctx, ref.Owner, ref.Repo)
		if err != nil {
			return Result{}, err
		}
		found := false
		for _, asset := range assets {
			if asset.Name == ref.Asset {
				downloadURL = asset.BrowserDownloadURL
				found = true
				break
			}
		}
		if !found {
			return Result{}, fmt.Errorf("%w: latest %s/%s release does not publish %s",
				ErrAssetNotFound, ref.Owner, ref.Repo, ref.Asset)
		}
		fileName = ref.Asset
	} else {
		u, err := url.Parse(rec.Source)
		if err != nil {
			return Result{}, fmt.Errorf("%w: parse source url %s: %v", netfetch.ErrFetchFailed, rec.Source, err)
		}
		fileName = path.Base(u.Path)
		if fileName == "." || fileName == "/" || fileName == "" {
			return Result{}, fmt.Errorf("%w: cannot infer file name from %s", netfetch.ErrFetchFailed, rec.Source)
		}
	}

	data, err := b.Fetcher.Fetch(ctx, downloadURL)
	if err != nil {
		return Result{}, err
	}

	if err := writeExecutable(filepath.Join(dest, fileName), data); err != nil {
		return Result{}, fmt.Errorf("%w: %v", netfetch.ErrFetchFailed, err)
	}

	sum := sha256.Sum256(data)
	return Result{Checksum: hex.EncodeToString(sum[:])}, nil
}

// Update re-downloads; a binary has no separate notion of already-present.
func (b *Binary) Update(ctx context.Context, rec registry.Record, dest string) (Result, error) {
	return b.Install(ctx, rec, dest)
}

func writeExecutable(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("prepare destination: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o755); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("finalize download: %w", err)
	}
	return nil
}
