package regionimport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/logger"
	"github.com/ougirez/cellarium/internal/pkg/metrics"
	"github.com/ougirez/cellarium/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRetries       = 3
	defaultRetryInterval = 200 * time.Millisecond
	defaultMaxBodyBytes  = 5 << 20
	maxNameLen           = 200
)

type Service struct {
	store         store.RegionStore
	client        *http.Client
	validate      *validator.Validate
	timeout       time.Duration
	maxBodyBytes  int64
	retries       uint64
	retryInterval time.Duration
}

// NewRegionImportService builds the importer. A page larger than maxBodyBytes
// fails the import; zero selects a 5 MiB cap.
func NewRegionImportService(store store.RegionStore, client *http.Client, timeout time.Duration, maxBodyBytes int64) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &Service{
		store:         store,
		client:        client,
		validate:      validator.New(),
		timeout:       timeout,
		maxBodyBytes:  maxBodyBytes,
		retries:       defaultRetries,
		retryInterval: defaultRetryInterval,
	}
}

// Import fetches every page concurrently, collects the (name, country) rows of
// their tables and upserts them. A page that cannot be fetched fails the whole
// import; a malformed row is only skipped.
func (s *Service) Import(ctx context.Context, request dto.RegionImportRequest) (*dto.RegionImportResponse, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rows := dto.NewRegionImport()
	eg, egCtx := errgroup.WithContext(ctx)
	for _, pageURL := range request.URLs {
		pageURL := pageURL
		eg.Go(func() error {
			doc, err := s.fetchPage(egCtx, pageURL)
			if err != nil {
				logger.Errorf(ctx, "fetchPage, url-%s: %s", pageURL, err.Error())
				return fmt.Errorf("%s: %w", pageURL, constants.ErrUpstream)
			}

			s.parseRegionPage(ctx, doc, rows)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	keys := rows.Rows()
	resp := &dto.RegionImportResponse{Regions: []*domain.Region{}, Skipped: rows.Skipped()}
	if len(keys) > 0 {
		regions, err := s.store.UpsertRegions(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("store.UpsertRegions: %w", err)
		}
		resp.Regions = regions
	}

	metrics.RecordRegionImport(len(keys), resp.Skipped)
	logger.Infof(ctx, "region import: %d rows from %d pages, %d skipped", len(keys), len(request.URLs), resp.Skipped)
	return resp, nil
}

func (s *Service) fetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	var body []byte
	err := backoff.Retry(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("http.NewRequest: %w", err))
			}

			resp, err := s.client.Do(req)
			if err != nil {
				return fmt.Errorf("client.Do: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				statusErr := fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
				if resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
					return backoff.Permanent(statusErr)
				}
				return statusErr
			}

			body, err = io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes+1))
			if err != nil {
				return fmt.Errorf("io.ReadAll: %w", err)
			}
			if int64(len(body)) > s.maxBodyBytes {
				return backoff.Permanent(fmt.Errorf("response body exceeds %d bytes", s.maxBodyBytes))
			}
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryInterval), s.retries),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	return doc, nil
}

// parseRegionPage reads every table row whose first two cells are a region
// name and an ISO alpha-2 country code. Header rows (th only) are ignored.
func (s *Service) parseRegionPage(ctx context.Context, doc *goquery.Document, rows *dto.RegionImport) {
	doc.Find("table tr").Each(func(i int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 2 {
			return
		}

		key := dto.RegionKey{
			Name:    strings.TrimSpace(tds.Eq(0).Text()),
			Country: strings.ToUpper(strings.TrimSpace(tds.Eq(1).Text())),
		}
		if err := s.checkRow(key); err != nil {
			logger.Warnf(ctx, "skipping row %d (%q, %q): %s", i, key.Name, key.Country, err.Error())
			rows.Skip()
			return
		}

		rows.Put(key)
	})
}

func (s *Service) checkRow(key dto.RegionKey) error {
	if err := s.validate.Var(key.Name, fmt.Sprintf("required,max=%d", maxNameLen)); err != nil {
		return fmt.Errorf("invalid name")
	}
	if err := s.validate.Var(key.Country, "required,iso3166_1_alpha2"); err != nil {
		return fmt.Errorf("invalid country")
	}
	return nil
}
