package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"snippet-shell/internal/logger"
)

// ManifestName is the feed document listing the latest release.
const ManifestName = "latest.yml"

var ErrNoFeed = errors.New("updater: no feed URL configured")

// Manifest is the subset of latest.yml the checker relies on.
type Manifest struct {
	Version     string         `yaml:"version"`
	Path        string         `yaml:"path"`
	ReleaseDate string         `yaml:"releaseDate"`
	Files       []ManifestFile `yaml:"files"`
}

type ManifestFile struct {
	URL  string `yaml:"url"`
	Size int64  `yaml:"size"`
}

// FeedChecker checks an HTTP release feed and downloads newer packages.
type FeedChecker struct {
	feedURL     *url.URL
	current     *semver.Version
	downloadDir string
	httpClient  *http.Client
	userAgent   string
	log         logger.Logger

	// ProgressInterval is the minimum time between DownloadProgress events.
	// The final progress event is always sent.
	ProgressInterval time.Duration
}

// NewFeedChecker returns a checker for feedURL. It fails with ErrNoFeed when
// feedURL is empty, and with a parse error when currentVersion is not a
// semantic version, as for development builds.
func NewFeedChecker(feedURL, currentVersion, downloadDir string, log logger.Logger) (*FeedChecker, error) {
	if feedURL == "" {
		return nil, ErrNoFeed
	}
	base, err := url.Parse(strings.TrimSuffix(feedURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse feed URL: %w", err)
	}

	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		return nil, fmt.Errorf("running version %q: %w", currentVersion, err)
	}

	if log == nil {
		log = logger.Nop{}
	}

	return &FeedChecker{
		feedURL:          base,
		current:          current,
		downloadDir:      downloadDir,
		httpClient:       &http.Client{},
		userAgent:        "SnippetShell/" + current.String(),
		log:              log,
		ProgressInterval: time.Second,
	}, nil
}

// Check runs one check cycle. Any failure is reported as an Error event and
// ends the cycle.
func (f *FeedChecker) Check(ctx context.Context, emit func(Event)) {
	emit(Event{Kind: Checking})

	manifest, err := f.fetchManifest(ctx)
	if err != nil {
		emit(Event{Kind: Error, Err: err})
		return
	}

	latest, err := semver.NewVersion(manifest.Version)
	if err != nil {
		emit(Event{Kind: Error, Err: fmt.Errorf("feed version %q: %w", manifest.Version, err)})
		return
	}

	release := &ReleaseInfo{Version: latest.String(), ReleaseDate: manifest.ReleaseDate}
	if !latest.GreaterThan(f.current) {
		emit(Event{Kind: NotAvailable, Release: release})
		return
	}
	emit(Event{Kind: Available, Release: release})

	file, err := f.download(ctx, manifest, func(p Progress) {
		emit(Event{Kind: DownloadProgress, Release: release, Progress: p})
	})
	if err != nil {
		emit(Event{Kind: Error, Release: release, Err: err})
		return
	}

	release.File = file
	emit(Event{Kind: Downloaded, Release: release})
}

func (f *FeedChecker) fetchManifest(ctx context.Context) (*Manifest, error) {
	manifestURL := f.feedURL.ResolveReference(&url.URL{Path: ManifestName})

	resp, err := f.get(ctx, manifestURL.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ManifestName, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestName, err)
	}
	if manifest.Version == "" {
		return nil, fmt.Errorf("%s: missing version", ManifestName)
	}
	return &manifest, nil
}

func (f *FeedChecker) download(ctx context.Context, manifest *Manifest, onProgress func(Progress)) (string, error) {
	name, size := manifest.Path, int64(0)
	if len(manifest.Files) > 0 {
		name, size = manifest.Files[0].URL, manifest.Files[0].Size
	}
	if name == "" {
		return "", fmt.Errorf("%s: no downloadable file", ManifestName)
	}

	ref, err := url.Parse(name)
	if err != nil {
		return "", fmt.Errorf("package URL %q: %w", name, err)
	}
	packageURL := f.feedURL.ResolveReference(ref)

	resp, err := f.get(ctx, packageURL.String())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(f.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	dest := filepath.Join(f.downloadDir, path.Base(packageURL.Path))
	tmp, err := os.CreateTemp(f.downloadDir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("create download file: %w", err)
	}
	defer os.Remove(tmp.Name())

	total := resp.ContentLength
	if total <= 0 {
		total = size
	}

	pw := newProgressWriter(tmp, total, f.ProgressInterval, onProgress)
	_, copyErr := io.Copy(pw, resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil {
		return "", fmt.Errorf("download %s: %w", packageURL, copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("write %s: %w", tmp.Name(), closeErr)
	}
	pw.Finish()

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("store package: %w", err)
	}

	f.log.Debug("Updater", "package stored", map[string]interface{}{
		"path":  dest,
		"bytes": pw.written,
	})
	return dest, nil
}

func (f *FeedChecker) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: HTTP %d", target, resp.StatusCode)
	}
	return resp, nil
}
