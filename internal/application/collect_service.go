package application

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// CollectService persists one browser's scan results. Each call replaces
// whatever that browser recorded before; nothing is merged here.
type CollectService struct {
	store  domain.ResultStore
	logger *slog.Logger
	now    func() time.Time
}

func NewCollectService(store domain.ResultStore, logger *slog.Logger) *CollectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollectService{store: store, logger: logger, now: time.Now}
}

// Record tags every result with browser and writes them under the browser's key.
func (s *CollectService) Record(browser string, results []domain.ScanResult, duration time.Duration) error {
	if browser == "" {
		return fmt.Errorf("%w: browser name is required", domain.ErrConfig)
	}

	tagged := make([]domain.ScanResult, len(results))
	for i, r := range results {
		r.Browser = browser
		tagged[i] = r
	}

	run := domain.BrowserRun{
		Browser:         browser,
		RecordedAt:      s.now().UTC(),
		DurationSeconds: duration.Seconds(),
		Results:         tagged,
	}
	if err := s.store.Write(browser, run); err != nil {
		return fmt.Errorf("recording %s results: %w", browser, err)
	}

	s.logger.Info("recorded results", "browser", browser, "results", len(tagged))
	return nil
}
