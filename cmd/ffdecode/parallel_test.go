//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestForEachFileOrder(t *testing.T) {
	files := []string{"a.mp4", "bb.mp4", "ccc.mp4", "dddd.mp4"}
	got, err := forEachFile(context.Background(), files, 2, func(_ context.Context, path string) (int, error) {
		return len(strings.TrimSuffix(path, ".mp4")), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, n := range got {
		if n != i+1 {
			t.Errorf("result %d = %d, want %d", i, n, i+1)
		}
	}
}

func TestForEachFileLimit(t *testing.T) {
	var running, peak atomic.Int32
	files := make([]string, 16)

	_, err := forEachFile(context.Background(), files, 3, func(_ context.Context, _ string) (struct{}, error) {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if peak.Load() > 3 {
		t.Errorf("peak concurrency %d, want at most 3", peak.Load())
	}
}

func TestForEachFileError(t *testing.T) {
	boom := errors.New("boom")
	_, err := forEachFile(context.Background(), []string{"ok", "bad", "ok"}, 1, func(_ context.Context, path string) (string, error) {
		if path == "bad" {
			return "", boom
		}
		return path, nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}
