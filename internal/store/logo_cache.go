package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"remoteboard/internal/util"
)

const DefaultMaxLogoBytes = 512 * 1024 // 512KB

var (
	ErrLogoNotFound   = errors.New("logo not found")
	ErrHostNotAllowed = errors.New("logo host not allowed")
	ErrNotImage       = errors.New("not an image")
)

type Logo struct {
	Key         string
	ContentType string
	Bytes       []byte
}

// LogoCache fetches company logos from allow-listed hosts and keeps the bytes in
// SQLite so every page load does not hit the logo CDN.
type LogoCache struct {
	DB         *sql.DB
	Client     *http.Client
	Limiter    *util.HostLimiter
	AllowHosts []string
	MaxBytes   int
	UserAgent  string
}

func LogoKeyFromURL(u string) string {
	h := sha256.Sum256([]byte(util.CanonicalizeURL(u)))
	return hex.EncodeToString(h[:])
}

// Get returns a cached logo by key.
func (c *LogoCache) Get(ctx context.Context, key string) (Logo, error) {
	lg := Logo{Key: key}
	err := c.DB.QueryRowContext(ctx,
		`SELECT content_type, bytes FROM logos WHERE key = ? LIMIT 1;`, key,
	).Scan(&lg.ContentType, &lg.Bytes)
	if errors.Is(err, sql.ErrNoRows) {
		return Logo{}, ErrLogoNotFound
	}
	if err != nil {
		return Logo{}, err
	}
	return lg, nil
}

// Fetch returns the logo for raw, downloading and storing it on a cache miss.
func (c *LogoCache) Fetch(ctx context.Context, raw string) (Logo, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}

	pu, err := url.Parse(raw)
	if err != nil || pu.Host == "" || (pu.Scheme != "http" && pu.Scheme != "https") {
		return Logo{}, fmt.Errorf("bad logo url %q", raw)
	}
	if !util.HostAllowed(pu.Hostname(), c.AllowHosts) {
		return Logo{}, ErrHostNotAllowed
	}

	key := LogoKeyFromURL(raw)
	if lg, err := c.Get(ctx, key); err == nil {
		return lg, nil
	} else if !errors.Is(err, ErrLogoNotFound) {
		return Logo{}, err
	}

	if c.Limiter != nil {
		if err := c.Limiter.WaitURL(ctx, raw); err != nil {
			return Logo{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return Logo{}, err
	}
	ua := c.UserAgent
	if ua == "" {
		ua = "Mozilla/5.0"
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Logo{}, fmt.Errorf("logo get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Logo{}, fmt.Errorf("logo status %s", resp.Status)
	}

	limit := c.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxLogoBytes
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(limit)+1))
	if err != nil {
		return Logo{}, fmt.Errorf("logo read: %w", err)
	}
	if len(b) == 0 {
		return Logo{}, ErrNotImage
	}
	if len(b) > limit {
		return Logo{}, fmt.Errorf("logo larger than %d bytes", limit)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "image/") {
		// sniff as fallback
		sn := http.DetectContentType(b)
		if !strings.HasPrefix(sn, "image/") {
			return Logo{}, ErrNotImage
		}
		ct = sn
	}

	_, err = c.DB.ExecContext(ctx, `
INSERT OR REPLACE INTO logos(key, source_url, content_type, bytes, fetched_at)
VALUES(?,?,?,?,?);`,
		key,
		raw,
		ct,
		b,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return Logo{}, fmt.Errorf("logo store: %w", err)
	}

	log.Debug().Str("component", "logo-cache").Str("url", raw).Int("bytes", len(b)).Msg("cached")
	return Logo{Key: key, ContentType: ct, Bytes: b}, nil
}

func (c *LogoCache) Count(ctx context.Context) (int, error) {
	var n int
	err := c.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM logos;`).Scan(&n)
	return n, err
}
