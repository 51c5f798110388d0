// Command xlit transliterates a word or sentence from the command line.
//
// Usage:
//
//	xlit [flags] [en2gu|gu2en] <text...>
//	xlit gu2en "નમસ્તે"
//	xlit --topk=3 namaste
//
// Without an explicit direction the script of the input decides:
// Gujarati text goes gu2en, everything else en2gu. Multi-word input is
// treated as a sentence; a single word prints ranked candidates one
// per line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/heartmarshall/gujarati-xlit/internal/app"
	"github.com/heartmarshall/gujarati-xlit/internal/config"
	"github.com/heartmarshall/gujarati-xlit/internal/domain"
	"github.com/heartmarshall/gujarati-xlit/internal/gujarati"
	"github.com/heartmarshall/gujarati-xlit/internal/provision"
	"github.com/heartmarshall/gujarati-xlit/internal/xlit"
)

func main() {
	topK := flag.Int("topk", 5, "number of candidates for single-word input")
	beam := flag.Int("beam", 4, "decoder beam width")
	noRescore := flag.Bool("no-rescore", false, "disable word probability rescoring")
	modelsDir := flag.String("models-dir", "", "model artifacts directory (default: ~/.gujarati-xlit/models)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	d, text, err := parseArgs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Usage: xlit [flags] [en2gu|gu2en] <text...>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prov := provision.New(provision.Config{Dir: *modelsDir}, logger)
	build := app.BuildEngine(config.EngineConfig{
		BeamWidth:    *beam,
		Alpha:        xlit.DefaultAlpha,
		Rescore:      !*noRescore,
		MaxBatchSize: 32,
	}, prov, logger)

	engine, err := build(ctx, d)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build engine: %v\n", err)
		os.Exit(1)
	}

	if strings.ContainsAny(text, " \t") {
		out, err := engine.TranslitSentence(ctx, text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "transliterate: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(out)
		return
	}

	cands, err := engine.TranslitWord(ctx, text, *topK)
	if err != nil {
		fmt.Fprintf(os.Stderr, "transliterate: %v\n", err)
		os.Exit(1)
	}
	for _, c := range cands {
		fmt.Println(c)
	}
}

// parseArgs accepts an optional leading direction followed by the text
// to transliterate. With no direction the input script decides.
func parseArgs(args []string) (domain.Direction, string, error) {
	if len(args) == 0 {
		return "", "", errors.New("no input text")
	}

	if d := domain.Direction(args[0]); d.IsValid() {
		text := strings.TrimSpace(strings.Join(args[1:], " "))
		if text == "" {
			return "", "", errors.New("no input text")
		}
		return d, text, nil
	}

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", "", errors.New("no input text")
	}
	if gujarati.IsGujarati(text) {
		return domain.DirectionGujaratiToRoman, text, nil
	}
	return domain.DirectionRomanToGujarati, text, nil
}
