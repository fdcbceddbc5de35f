// Package currency конвертирует суммы заказов для отображения.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultBaseURL  = "https://api.exchangerate-api.com/v4/latest"
	defaultCacheTTL = time.Hour
	requestTimeout  = 10 * time.Second
)

// fallbackRates используются, когда внешний API недоступен.
var fallbackRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"CLP": 950.0,
	"MXN": 17.0,
	"ARS": 350.0,
	"COP": 4000.0,
	"BRL": 5.0,
	"GBP": 0.79,
	"JPY": 150.0,
	"CNY": 7.2,
}

type exchangeRateResponse struct {
	Result          string             `json:"result"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// Service получает курсы валют с часовым in-memory кэшем
// и фиксированным fallback-набором при отказе upstream.
type Service struct {
	client   *http.Client
	baseURL  string
	cacheTTL time.Duration
	logger   *log.Entry
	now      func() time.Time

	mu          sync.Mutex
	cachedRates map[string]float64
	cachedBase  string
	lastUpdate  time.Time
}

// ServiceOptions задаёт параметры сервиса курсов.
type ServiceOptions struct {
	Client   *http.Client
	BaseURL  string
	CacheTTL time.Duration
	Logger   *log.Entry
	Now      func() time.Time
}

// Option настраивает Service.
type Option func(*ServiceOptions)

// WithHTTPClient задаёт HTTP-клиент.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *ServiceOptions) {
		opts.Client = client
	}
}

// WithBaseURL задаёт адрес API курсов.
func WithBaseURL(baseURL string) Option {
	return func(opts *ServiceOptions) {
		opts.BaseURL = baseURL
	}
}

// WithCacheTTL задаёт время жизни кэша курсов.
func WithCacheTTL(ttl time.Duration) Option {
	return func(opts *ServiceOptions) {
		opts.CacheTTL = ttl
	}
}

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(opts *ServiceOptions) {
		opts.Logger = logger
	}
}

// WithClock задаёт источник времени, используется в тестах.
func WithClock(now func() time.Time) Option {
	return func(opts *ServiceOptions) {
		opts.Now = now
	}
}

// NewService создаёт сервис курсов валют.
func NewService(options ...Option) *Service {
	opts := ServiceOptions{
		BaseURL:  defaultBaseURL,
		CacheTTL: defaultCacheTTL,
	}
	for _, option := range options {
		option(&opts)
	}

	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: requestTimeout}
	}
	if opts.Logger == nil {
		opts.Logger = log.WithField("component", "currency-service")
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		client:   opts.Client,
		baseURL:  opts.BaseURL,
		cacheTTL: opts.CacheTTL,
		logger:   opts.Logger,
		now:      opts.Now,
	}
}

// GetExchangeRates возвращает таблицу курсов для базовой валюты.
// При отказе API отдаёт кэш или фиксированный fallback, но не ошибку.
func (s *Service) GetExchangeRates(ctx context.Context, baseCurrency string) map[string]float64 {
	if baseCurrency == "" {
		baseCurrency = "USD"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.cachedRates != nil && s.cachedBase == baseCurrency && now.Sub(s.lastUpdate) < s.cacheTTL {
		return s.cachedRates
	}

	rates, err := s.fetch(ctx, baseCurrency)
	if err != nil {
		s.logger.WithError(err).WithField("base", baseCurrency).Warn("failed to fetch exchange rates, using fallback")
		if s.cachedRates != nil && s.cachedBase == baseCurrency {
			return s.cachedRates
		}
		rates = fallbackRates
	}

	s.cachedRates = rates
	s.cachedBase = baseCurrency
	s.lastUpdate = now
	return rates
}

// Convert пересчитывает сумму из fromCurrency в toCurrency.
func (s *Service) Convert(ctx context.Context, amount float64, fromCurrency, toCurrency string) (float64, error) {
	if fromCurrency == toCurrency {
		return amount, nil
	}

	rates := s.GetExchangeRates(ctx, fromCurrency)
	rate, ok := rates[toCurrency]
	if !ok {
		return 0, fmt.Errorf("unknown currency: %s", toCurrency)
	}

	return amount * rate, nil
}

// ClearCache сбрасывает кэш курсов.
func (s *Service) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cachedRates = nil
	s.cachedBase = ""
	s.lastUpdate = time.Time{}
}

func (s *Service) fetch(ctx context.Context, baseCurrency string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s", s.baseURL, baseCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rates API returned status %d", resp.StatusCode)
	}

	var payload exchangeRateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode exchange rates: %w", err)
	}
	if len(payload.ConversionRates) == 0 {
		return nil, fmt.Errorf("exchange rates API returned no rates")
	}

	return payload.ConversionRates, nil
}
