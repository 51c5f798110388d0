// Package fairseq shells out to a fairseq-interactive style generator
// binary. The binary is treated as an opaque decode oracle: a batch of
// preprocessed lines goes in on stdin, the raw S-/H- record output
// comes back on stdout.
package fairseq

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

// Config binds the decoder to one direction's model artifacts. All
// fields are fixed at construction; there is no per-call
// reconfiguration.
type Config struct {
	BinPath   string // generator binary, default "fairseq-interactive"
	DataBin   string // binarized vocabulary directory
	ModelPath string // model checkpoint
	LangList  string // language list file
	LangPair  string // e.g. "en-gu"
	Beam      int
	BatchSize int
}

// Decoder invokes the generator binary once per batch.
type Decoder struct {
	cfg  Config
	args []string
	log  *slog.Logger
}

// New validates that the bound artifacts exist and prepares the
// invocation. A missing checkpoint or vocabulary directory is a
// provisioning failure: the decoder is unusable without them.
func New(cfg Config, logger *slog.Logger) (*Decoder, error) {
	if cfg.BinPath == "" {
		cfg.BinPath = "fairseq-interactive"
	}
	if cfg.Beam < 1 {
		cfg.Beam = 4
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 32
	}

	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: model checkpoint %s: %v", domain.ErrProvisioning, cfg.ModelPath, err)
	}
	if _, err := os.Stat(cfg.DataBin); err != nil {
		return nil, fmt.Errorf("%w: data-bin %s: %v", domain.ErrProvisioning, cfg.DataBin, err)
	}

	return &Decoder{
		cfg:  cfg,
		args: buildArgs(cfg),
		log:  logger.With("adapter", "fairseq"),
	}, nil
}

func buildArgs(cfg Config) []string {
	return []string{
		cfg.DataBin,
		"--path", cfg.ModelPath,
		"--task", "translation_multi_simple_epoch",
		"--lang-pairs", cfg.LangPair,
		"--lang-dict", cfg.LangList,
		"--beam", strconv.Itoa(cfg.Beam),
		"--nbest", strconv.Itoa(cfg.Beam),
		"--batch-size", strconv.Itoa(cfg.BatchSize),
		"--buffer-size", strconv.Itoa(cfg.BatchSize + 1),
	}
}

// Decode runs one generator invocation over the batch. The call blocks
// for the duration of inference; cancel via ctx. Failures are returned
// as-is and never retried here.
func (d *Decoder) Decode(ctx context.Context, batch []string) (string, error) {
	if len(batch) == 0 {
		return "", nil
	}

	cmd := exec.CommandContext(ctx, d.cfg.BinPath, d.args...)
	cmd.Stdin = strings.NewReader(strings.Join(batch, "\n") + "\n")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	d.log.DebugContext(ctx, "decode batch", slog.Int("size", len(batch)))

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("fairseq: %w: %s", err, lastLine(stderr.String()))
	}
	return stdout.String(), nil
}

// lastLine extracts the final non-empty stderr line; fairseq prints
// its actual error there after pages of progress output.
func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
