package bridge

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// resolutionKeys returns the ordered key set to resolve for the page.
//
// A partial reload aimed at the mounted component resolves exactly the
// requested keys (unknown ones are skipped) plus every Always prop. Any other
// request resolves all keys except Optional props.
func resolutionKeys(r *http.Request, component string, all *Props) []string {
	if !IsPartialRequest(r, component) {
		keys := make([]string, 0, all.Len())
		for pair := all.m.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Value.mode == modeOptional {
				continue
			}
			keys = append(keys, pair.Key)
		}
		return keys
	}

	requested := partialKeys(r)
	keys := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, k := range requested {
		if _, ok := all.Get(k); !ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for pair := all.m.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.mode != modeAlways {
			continue
		}
		if _, ok := seen[pair.Key]; ok {
			continue
		}
		keys = append(keys, pair.Key)
	}
	return keys
}

// resolveSequential resolves props one at a time in key order. The first
// failing producer aborts the whole resolution.
func resolveSequential(ctx context.Context, all *Props, keys []string) (map[string]any, error) {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		p, _ := all.Get(k)
		v, err := p.resolve(ctx)
		if err != nil {
			return nil, fmt.Errorf("prop %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// resolveConcurrent resolves lazy props in parallel, at most limit at a time
// (limit <= 0 means unbounded), and assembles results by key. Producers
// receive a context that is cancelled as soon as one of them fails.
func resolveConcurrent(ctx context.Context, all *Props, keys []string, limit int) (map[string]any, error) {
	values := make([]any, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, k := range keys {
		p, _ := all.Get(k)
		if !p.IsLazy() {
			values[i] = p.value
			continue
		}
		g.Go(func() error {
			v, err := p.resolve(gctx)
			if err != nil {
				return fmt.Errorf("prop %q: %w", k, err)
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(keys))
	for i, k := range keys {
		out[k] = values[i]
	}
	return out, nil
}
