package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// Stage names a step of an update.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// UpdateInput selects the update to apply. An empty TargetVersion means the
// latest release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported as the update moves through its stages.
type UpdateProgress struct {
	Stage   Stage
	Message string
}

// asset is one downloadable release file for this platform.
type asset struct {
	tag          string
	name         string
	url          string
	checksumsURL string
}

// Update installs the release archive for this platform over the running
// executable. The archive is streamed to disk next to the executable and
// hashed on the way, so nothing is installed unless checksums.txt agrees.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if progress == nil {
		progress = func(UpdateProgress) {}
	}
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	tag := input.TargetVersion
	if tag == "" {
		progress(UpdateProgress{Stage: StageCheck, Message: "Checking for the latest release..."})
		res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	a, err := c.assetFor(tag)
	if err != nil {
		return err
	}
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}

	work, err := os.MkdirTemp(filepath.Dir(target), ".medborger-update-*")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(work) }()

	progress(UpdateProgress{Stage: StageDownload, Message: fmt.Sprintf("Downloading %s (%s)...", a.tag, a.name)})
	archivePath := filepath.Join(work, a.name)
	sum, err := c.fetchTo(ctx, a.url, archivePath)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{Stage: StageVerify, Message: "Verifying checksum..."})
	want, err := c.expectedSum(ctx, a)
	if err != nil {
		return err
	}
	if sum != want {
		return fmt.Errorf("%w: %s: expected %s, got %s", ErrChecksum, a.name, want, sum)
	}

	progress(UpdateProgress{Stage: StageInstall, Message: "Installing..."})
	binPath := filepath.Join(work, "medborger.new")
	if err := extract(archivePath, binPath); err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}
	if err := install(binPath, target); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	progress(UpdateProgress{Stage: StageDone, Message: fmt.Sprintf("Updated to %s", a.tag)})
	return nil
}

func (c *Checker) assetFor(tag string) (asset, error) {
	name, err := assetNameFor(c.goos, c.goarch)
	if err != nil {
		return asset{}, err
	}
	base := fmt.Sprintf("%s/%s/%s/releases/download/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag)
	return asset{
		tag:          tag,
		name:         name,
		url:          base + "/" + name,
		checksumsURL: base + "/checksums.txt",
	}, nil
}

// releaseArch maps GOARCH to the architecture names used in release assets.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return "medborger_Darwin_all.tar.gz", nil
	}
	ext := ".tar.gz"
	osName := ""
	switch goos {
	case "linux":
		osName = "Linux"
	case "windows":
		osName, ext = "Windows", ".zip"
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	return "medborger_" + osName + "_" + arch + ext, nil
}

func (c *Checker) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// fetchTo writes the body at url to path and returns its hex sha256.
func (c *Checker) fetchTo(ctx context.Context, url, path string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(f, h), body); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return hexSum(h), nil
}

func (c *Checker) expectedSum(ctx context.Context, a asset) (string, error) {
	body, err := c.get(ctx, a.checksumsURL)
	if err != nil {
		return "", fmt.Errorf("download checksums: %w", err)
	}
	defer func() { _ = body.Close() }()

	sum, err := lookupChecksum(body, a.name)
	if err != nil {
		return "", err
	}
	return sum, nil
}

// lookupChecksum finds name in a sha256sum style listing ("<hex>  <file>").
// Lines that do not have exactly two fields are ignored.
func lookupChecksum(r io.Reader, name string) (string, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[1] == name {
			return strings.ToLower(fields[0]), nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read checksums: %w", err)
	}
	return "", fmt.Errorf("no checksum for %s in checksums.txt", name)
}

func hexSum(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}

// extract copies the medborger executable out of the archive at src into dst.
func extract(src, dst string) error {
	if strings.HasSuffix(src, ".zip") {
		return extractZip(src, "medborger.exe", dst)
	}
	return extractTarGz(src, "medborger", dst)
}

func extractTarGz(src, name, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("binary %q not found in archive", name)
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return writeFile(dst, tr)
		}
	}
}

func extractZip(src, name, dst string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer func() { _ = zr.Close() }()

	for _, zf := range zr.File {
		if filepath.Base(zf.Name) != name {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()
		return writeFile(dst, rc)
	}
	return fmt.Errorf("binary %q not found in archive", name)
}

func writeFile(path string, r io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// install gives bin the permissions of target and renames it over target.
// bin must live on the same filesystem as target.
func install(bin, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}
	if err := os.Chmod(bin, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(bin, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
