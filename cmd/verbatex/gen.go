package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"verbatex"
)

// runGen renders every expression line of the input file into the output
// file. Blank lines and lines starting with # pass through unchanged, so a
// commented expression list stays readable after rendering. With watch set
// it keeps running and re-renders whenever the input is written.
func runGen(ctx context.Context, input, output string, watch bool) error {
	if err := genFile(input, output); err != nil {
		if !watch {
			return err
		}
		log.Printf("render failed: %v", err)
	}
	if !watch {
		return nil
	}
	return watchFile(ctx, input, func() error { return genFile(input, output) })
}

func genFile(input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	var out strings.Builder
	for i, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			out.WriteString(line)
			out.WriteString("\n")
			continue
		}
		latex, err := verbatex.Render(trimmed)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		out.WriteString(latex)
		out.WriteString("\n")
	}
	return os.WriteFile(output, []byte(out.String()), 0o644)
}

// watchFile watches the file's directory rather than the file itself;
// editors that replace-on-save would otherwise silently detach the watch.
func watchFile(ctx context.Context, path string, build func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	log.Printf("watching %s", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != abs {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				log.Printf("file changed: %s", path)
				if err := build(); err != nil {
					log.Printf("render failed: %v", err)
				} else {
					log.Printf("render complete")
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher error: %v", err)
		}
	}
}
