package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
)

// ErrAssetNotFound is returned when an image reference cannot be located
var ErrAssetNotFound = errors.New("asset not found")

// ErrBlockedAddress is returned when a remote image resolves to a non-public address
var ErrBlockedAddress = errors.New("asset address not allowed")

const maxRemoteAssetBytes = 20 << 20

// AssetStore loads the images referenced by a render plan
type AssetStore interface {
	Open(ctx context.Context, ref string) (image.Image, error)
}

// LocalAssetStore resolves root-relative references ("/templates/...") against a static
// directory, fetches http(s) references and decodes inline data: URIs
type LocalAssetStore struct {
	staticDir string
	client    *http.Client
}

// NewLocalAssetStore creates a LocalAssetStore rooted at staticDir.
// Remote references may only reach public unicast addresses.
func NewLocalAssetStore(staticDir string) *LocalAssetStore {
	return newLocalAssetStore(staticDir, publicAddressOnly)
}

func newLocalAssetStore(staticDir string, control func(network, address string, c syscall.RawConn) error) *LocalAssetStore {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   control,
	}
	return &LocalAssetStore{
		staticDir: staticDir,
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				Proxy:               nil,
				DialContext:         dialer.DialContext,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// cgnat is the shared address space of RFC 6598
var cgnat = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

// publicAddressOnly is a dial Control hook; address is already resolved, redirects included
func publicAddressOnly(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%s: %w", address, ErrBlockedAddress)
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublicIP(ip) {
		return fmt.Errorf("%s %s: %w", network, address, ErrBlockedAddress)
	}
	return nil
}

func isPublicIP(ip net.IP) bool {
	switch {
	case ip.IsLoopback(), ip.IsPrivate(), ip.IsUnspecified(),
		ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(), ip.IsMulticast():
		return false
	case cgnat.Contains(ip):
		return false
	}
	return true
}

// Ensure LocalAssetStore implements AssetStore
var _ AssetStore = (*LocalAssetStore)(nil)

// Open loads and decodes the image behind ref
func (s *LocalAssetStore) Open(ctx context.Context, ref string) (image.Image, error) {
	data, err := s.ReadBytes(ctx, ref)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", shortRef(ref), err)
	}
	return img, nil
}

// ReadBytes returns the raw bytes behind ref without decoding them
func (s *LocalAssetStore) ReadBytes(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case ref == "":
		return nil, fmt.Errorf("empty image reference: %w", ErrAssetNotFound)
	case strings.HasPrefix(ref, "data:"):
		return decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return s.fetch(ctx, ref)
	default:
		return s.readLocal(ref)
	}
}

func (s *LocalAssetStore) readLocal(ref string) ([]byte, error) {
	clean := filepath.Clean("/" + strings.TrimPrefix(ref, "/"))
	path := filepath.Join(s.staticDir, clean)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", ref, ErrAssetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}
	return data, nil
}

func (s *LocalAssetStore) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	log.Debugf("🌐 Fetching asset %s", url)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", url, ErrAssetNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteAssetBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}

// decodeDataURI decodes "data:<mime>;base64,<payload>"
func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data URI encoding %q", meta)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI: %w", err)
	}
	return data, nil
}

// shortRef keeps log lines readable when ref is an inline data URI
func shortRef(ref string) string {
	if len(ref) > 64 {
		return ref[:64] + "..."
	}
	return ref
}
