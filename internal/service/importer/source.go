package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
)

// maxPageBytes bounds a single fetched page.
const maxPageBytes = 32 << 20

// ImportFile imports one saved page from disk. Links inside it are ignored.
func (im *Importer) ImportFile(ctx context.Context, path string) (Summary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	sum, _, err := im.ImportPage(ctx, raw)
	return sum, err
}

// ImportURL fetches start and then every next link until the last page, or
// until maxPages pages were imported when maxPages > 0. Relative links
// resolve against the page they came from.
func (im *Importer) ImportURL(ctx context.Context, client *http.Client, start string, maxPages int) (Summary, error) {
	var total Summary

	next, err := url.Parse(start)
	if err != nil {
		return total, fmt.Errorf("invalid start url: %w", err)
	}

	for pages := 0; next != nil; pages++ {
		if maxPages > 0 && pages >= maxPages {
			slog.Warn("Stopping import at page limit", "max_pages", maxPages, "next", next.String())
			break
		}

		raw, err := fetch(ctx, client, next.String())
		if err != nil {
			return total, err
		}

		sum, link, err := im.ImportPage(ctx, raw)
		total.Add(sum)
		if err != nil {
			return total, fmt.Errorf("page %s: %w", next, err)
		}
		slog.Info("Imported page", "url", next.String(), "imported", sum.Imported, "skipped", sum.Skipped)

		if link == nil || *link == "" {
			break
		}
		ref, err := url.Parse(*link)
		if err != nil {
			return total, fmt.Errorf("invalid next link %q: %w", *link, err)
		}
		next = next.ResolveReference(ref)
	}

	return total, nil
}

func fetch(ctx context.Context, client *http.Client, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %d", target, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", target, err)
	}
	return raw, nil
}
