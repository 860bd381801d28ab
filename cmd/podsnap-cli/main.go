package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nguyentantai21042004/podsnap/internal/config"
	"github.com/nguyentantai21042004/podsnap/internal/logger"
	"github.com/nguyentantai21042004/podsnap/internal/model"
	"github.com/nguyentantai21042004/podsnap/internal/processor"
	"github.com/nguyentantai21042004/podsnap/internal/tui"
	"github.com/nguyentantai21042004/podsnap/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <audio file | YouTube URL>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, *logPath, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logPath, target string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := logger.NewWithOptions(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: out})

	if err := os.MkdirAll(cfg.Paths.Temp, 0755); err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}

	exec := executor.New()
	if err := processor.CheckTools(cfg, exec); err != nil {
		return err
	}
	deps, err := processor.NewDependencies(cfg, exec, log)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}
	proc := processor.New(cfg, deps, log)

	in, closeInput, err := inputFor(target)
	if err != nil {
		return err
	}
	defer closeInput()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done, err := proc.Submit(ctx, in)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	final, err := tea.NewProgram(tui.New(proc, done, cfg.Paths.Output), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	// Quitting early aborts the run; its files go once it has wound down.
	cancel()
	if err := proc.Wait(context.Background()); err != nil {
		return fmt.Errorf("wait for run: %w", err)
	}
	if err := proc.Reset(context.Background()); err != nil {
		log.Warn(context.Background(), "Reset after run: %v", err)
	}

	m, ok := final.(tui.Model)
	if !ok || !m.Finished() {
		return fmt.Errorf("cancelled")
	}
	if m.Err() != nil {
		headline, detail := model.Describe(m.Err())
		return fmt.Errorf("%s %s", headline, detail)
	}
	return nil
}

func inputFor(target string) (model.Input, func(), error) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return model.FromURL(target), func() {}, nil
	}

	f, err := os.Open(target)
	if err != nil {
		return model.Input{}, nil, fmt.Errorf("open audio: %w", err)
	}
	return model.FromUpload(f.Name(), f), func() { f.Close() }, nil
}
