package adapters

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
	"github.com/shouni/canvas-extend-kit/pkg/imgutil"
	"github.com/shouni/canvas-extend-kit/pkg/raster"
)

const cacheKeySeedBytes = "seed_bytes:"

// ImageCacher は取得済みバイト列のキャッシュ操作を抽象化するインターフェースです。
type ImageCacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

// SeedFetcher はシード画像を取得し、正準形式へ正規化するコンポーネントです。
// http(s) と gs:// の両方の URI を受け付けます。
type SeedFetcher struct {
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
	cache      ImageCacher
	expiration time.Duration
}

// NewSeedFetcher は依存関係を注入して SeedFetcher を初期化します。
func NewSeedFetcher(httpClient httpkit.ClientInterface, reader remoteio.InputReader, cache ImageCacher, cacheTTL time.Duration) (*SeedFetcher, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	// cache は nil を許容（キャッシュなし動作）
	return &SeedFetcher{
		httpClient: httpClient,
		reader:     reader,
		cache:      cache,
		expiration: cacheTTL,
	}, nil
}

// Fetch は URI からシードを取得し、復号・正規化した Raster を返します。
// 寸法が読み取れないデータは ErrInvalidSeed です。
func (f *SeedFetcher) Fetch(ctx context.Context, uri string) (*raster.Raster, error) {
	data, err := f.fetchBytes(ctx, uri)
	if err != nil {
		return nil, err
	}
	if _, _, err := imgutil.Dimensions(data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSeed, err)
	}
	return raster.Decode(data)
}

func (f *SeedFetcher) fetchBytes(ctx context.Context, uri string) ([]byte, error) {
	if f.cache != nil {
		if val, ok := f.cache.Get(cacheKeySeedBytes + uri); ok {
			if data, ok := val.([]byte); ok {
				return data, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "uri", uri)
		}
	}

	data, err := f.readSource(ctx, uri)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.Set(cacheKeySeedBytes+uri, data, f.expiration)
	}
	return data, nil
}

func (f *SeedFetcher) readSource(ctx context.Context, uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "gs://") {
		rc, err := f.reader.Open(ctx, uri)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	if safe, err := isSafeURL(uri); err != nil || !safe {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	return f.httpClient.FetchBytes(ctx, uri)
}

// isSafeURL は SSRF 対策として URL を検証します。
// 名前解決されたすべての IP アドレスに対してプライベート IP チェックを行います。
func isSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolvedIPs, err := net.LookupIP(host)
		if err != nil {
			return false, fmt.Errorf("名前解決失敗: %w", err)
		}
		ips = resolvedIPs
	}

	if len(ips) == 0 {
		return false, fmt.Errorf("IPが見つかりません")
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}
