package feedclient

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	feeddomain "github.com/vfg2006/toystore-admin-api/infrastructure/integrator/toyfeed/domain"
	"github.com/vfg2006/toystore-admin-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed default_feed.json
var defaultFeed []byte

type Client interface {
	GetFeed(ctx context.Context) (*feeddomain.RawFeed, error)
}

// FeedClient lê o feed bruto de clientes. A origem pode ser uma URL http(s),
// um arquivo local ou, quando não configurada, o feed padrão embutido.
type FeedClient struct {
	httpClient *http.Client
	source     string
}

func NewClient(cfg *config.Config) Client {
	timeout := cfg.Feed.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &FeedClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		source: strings.TrimSpace(cfg.Feed.Source),
	}
}

func (c *FeedClient) GetFeed(ctx context.Context) (*feeddomain.RawFeed, error) {
	var (
		body io.ReadCloser
		err  error
	)

	switch {
	case c.source == "":
		logrus.Debug("Usando feed de clientes padrão")
		body = io.NopCloser(bytes.NewReader(defaultFeed))
	case strings.HasPrefix(c.source, "http://") || strings.HasPrefix(c.source, "https://"):
		body, err = c.fetch(ctx)
	default:
		body, err = os.Open(c.source)
		if err != nil {
			err = fmt.Errorf("erro ao abrir o arquivo do feed: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var feed feeddomain.RawFeed
	if err := json.NewDecoder(body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("erro ao decodificar o feed: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"clientes":       len(feed.Data.Clientes),
		"registro_total": feed.Meta.RegistroTotal,
	}).Info("Feed de clientes carregado")

	return &feed, nil
}

func (c *FeedClient) fetch(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.source, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	return resp.Body, nil
}
