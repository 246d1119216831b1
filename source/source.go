// Package source provides the producers of shader text: files on disk,
// a file watcher, and generator functions.
package source

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/richinsley/shaderpreview/shader"
)

// Func produces shader text. It may block and should honor ctx.
type Func func(ctx context.Context) (string, error)

// DefaultGeneratorDelay mimics the latency of a remote shader generator.
const DefaultGeneratorDelay = 2 * time.Second

// ReadFile returns the contents of a shader file.
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read shader file %q: %w", path, err)
	}
	return string(b), nil
}

// File returns a Func reading path on every call.
func File(path string) Func {
	return func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return ReadFile(path)
	}
}

// RandomPreset returns a Func that waits for delay and then picks a random
// preset from lib.
func RandomPreset(lib *shader.Library, delay time.Duration) Func {
	return func(ctx context.Context) (string, error) {
		names := lib.Names()
		if len(names) == 0 {
			return "", errors.New("no presets to choose from")
		}

		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}

		return lib.Get(names[rand.IntN(len(names))])
	}
}
