// Package provision ensures model and dictionary artifacts are present
// on local storage before an engine binds them. Archives are fetched
// from the IndicXlit release pages on first use and unpacked under the
// models directory; after that every start is offline.
package provision

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

const (
	artifactVersion = "v1.0"

	modelFile    = "transformer/indicxlit.pt"
	dataBinDir   = "corpus-bin"
	dictsDir     = "word_prob_dicts"
	langListFile = "lang_list.txt"

	defaultEn2GuModelURL = "https://github.com/AI4Bharat/IndicXlit/releases/download/v1.0/indicxlit-en-indic-v1.0.zip"
	defaultGu2EnModelURL = "https://github.com/AI4Bharat/IndicXlit/releases/download/v1.0/indicxlit-indic-en-v1.0.zip"
	defaultEn2GuDictsURL = "https://github.com/AI4Bharat/IndicXlit/releases/download/v1.0/word_prob_dicts.zip"
	defaultGu2EnDictsURL = "https://github.com/AI4Bharat/IndicXlit/releases/download/v1.0/word_prob_dicts_en.zip"
)

// Config holds provisioning settings. Zero values fall back to the
// release URLs and a per-user models directory.
type Config struct {
	Dir           string
	En2GuModelURL string
	Gu2EnModelURL string
	En2GuDictsURL string
	Gu2EnDictsURL string
	// Timeout bounds a single archive download. Zero means no limit;
	// the model archives are large.
	Timeout time.Duration
}

// Artifacts are the on-disk paths an engine binds for one direction.
type Artifacts struct {
	ModelPath string
	DataBin   string
	LangList  string
}

// Provisioner downloads and unpacks artifacts on demand and answers
// with their local paths.
type Provisioner struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger
}

// New creates a Provisioner. Missing config fields get defaults.
func New(cfg Config, logger *slog.Logger) *Provisioner {
	if cfg.Dir == "" {
		cfg.Dir = defaultDir()
	}
	if cfg.En2GuModelURL == "" {
		cfg.En2GuModelURL = defaultEn2GuModelURL
	}
	if cfg.Gu2EnModelURL == "" {
		cfg.Gu2EnModelURL = defaultGu2EnModelURL
	}
	if cfg.En2GuDictsURL == "" {
		cfg.En2GuDictsURL = defaultEn2GuDictsURL
	}
	if cfg.Gu2EnDictsURL == "" {
		cfg.Gu2EnDictsURL = defaultGu2EnDictsURL
	}
	return &Provisioner{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    logger.With("adapter", "provision"),
	}
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "models"
	}
	return filepath.Join(home, ".gujarati-xlit", "models")
}

// dirFor returns the versioned artifact directory for a direction. The
// release archives are shared across all Indic languages, so the
// layout mirrors theirs.
func (p *Provisioner) dirFor(d domain.Direction) string {
	sub := "en2indic"
	if d == domain.DirectionGujaratiToRoman {
		sub = "indic2en"
	}
	return filepath.Join(p.cfg.Dir, sub, artifactVersion)
}

// EnsureModel guarantees the checkpoint, vocabulary directory and lang
// list for the direction exist locally, downloading and extracting the
// release archive on first use. Failure here is fatal to engine
// construction.
func (p *Provisioner) EnsureModel(ctx context.Context, d domain.Direction) (Artifacts, error) {
	base := p.dirFor(d)
	arts := Artifacts{
		ModelPath: filepath.Join(base, modelFile),
		DataBin:   filepath.Join(base, dataBinDir),
		LangList:  filepath.Join(base, langListFile),
	}

	if !fileExists(arts.ModelPath) || !dirExists(arts.DataBin) {
		url := p.cfg.En2GuModelURL
		if d == domain.DirectionGujaratiToRoman {
			url = p.cfg.Gu2EnModelURL
		}
		p.log.Info("downloading model archive",
			slog.String("direction", d.String()),
			slog.String("url", url),
		)
		if err := p.fetchArchive(ctx, url, base); err != nil {
			return Artifacts{}, fmt.Errorf("%w: model for %s: %v", domain.ErrProvisioning, d, err)
		}
		if !fileExists(arts.ModelPath) {
			return Artifacts{}, fmt.Errorf("%w: model checkpoint missing after extraction", domain.ErrProvisioning)
		}
	}

	if err := ensureLangList(arts.LangList); err != nil {
		return Artifacts{}, fmt.Errorf("%w: lang list: %v", domain.ErrProvisioning, err)
	}
	return arts, nil
}

// EnsureDict guarantees the word probability dictionary for the
// direction's target language, downloading the dictionary archive on
// first use and pruning languages this deployment never scores.
// Callers treat failure as non-fatal: rescoring is an enhancement, not
// a requirement.
func (p *Provisioner) EnsureDict(ctx context.Context, d domain.Direction) (string, error) {
	base := p.dirFor(d)
	lang, url := "gu", p.cfg.En2GuDictsURL
	if d == domain.DirectionGujaratiToRoman {
		lang, url = "en", p.cfg.Gu2EnDictsURL
	}

	path := filepath.Join(base, dictsDir, lang+"_word_prob_dict.json")
	if fileExists(path) {
		return path, nil
	}

	p.log.Info("downloading word probability dictionaries",
		slog.String("direction", d.String()),
		slog.String("url", url),
	)
	if err := p.fetchArchive(ctx, url, base); err != nil {
		return "", fmt.Errorf("dicts for %s: %w", d, err)
	}
	if !fileExists(path) {
		return "", fmt.Errorf("dictionary %s missing after extraction", path)
	}

	p.pruneDicts(filepath.Join(base, dictsDir), lang)
	return path, nil
}

// fetchArchive downloads a zip to a temp file next to the destination
// and extracts it under dest.
func (p *Provisioner) fetchArchive(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dest, "download-*.zip")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if err := p.download(ctx, url, tmp); err != nil {
		return err
	}
	return extractZip(tmp.Name(), dest)
}

func (p *Provisioner) download(ctx context.Context, url string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	_, err = io.Copy(w, resp.Body)
	return err
}

// doWithRetry executes the request with a single retry on 5xx or
// network errors; release asset downloads fail transiently often
// enough to warrant one.
func (p *Provisioner) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := p.client.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "download retry",
		slog.String("url", req.URL.String()),
		slog.String("reason", reason),
	)

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	time.Sleep(500 * time.Millisecond)

	return p.client.Do(req)
}

func extractZip(archive, dest string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	cleanDest := filepath.Clean(dest)
	for _, f := range r.File {
		target := filepath.Join(dest, f.Name)
		// Reject entries that escape the destination dir.
		if !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes %s", f.Name, dest)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := writeZipEntry(f, target); err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}
	return nil
}

func writeZipEntry(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}

// ensureLangList writes (or rewrites) the language list so the decoder
// sees exactly the en/gu pair, whatever the shared archive shipped.
func ensureLangList(path string) error {
	const want = "en\ngu\n"
	if data, err := os.ReadFile(path); err == nil && string(data) == want {
		return nil
	}
	return os.WriteFile(path, []byte(want), 0o644)
}

// pruneDicts removes dictionaries for languages this engine never
// scores; the shared archive ships one per Indic language.
func (p *Provisioner) pruneDicts(dir, keep string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	keepName := keep + "_word_prob_dict.json"
	for _, e := range entries {
		if e.IsDir() || e.Name() == keepName {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err == nil {
			p.log.Debug("pruned dictionary", slog.String("file", e.Name()))
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
