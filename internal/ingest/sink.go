package ingest

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/AngelCh415/landing-insights/internal/models"
	"github.com/AngelCh415/landing-insights/internal/utils"
)

var ErrSinkNotConfigured = errors.New("sink not configured")

type exportPayload struct {
	Owner       string                    `json:"owner"`
	ExportedAt  string                    `json:"exported_at"`
	Campaigns   []models.CampaignRecord   `json:"campaigns"`
	Experiments []models.ExperimentRecord `json:"experiments"`
}

// Sign returns the hex HMAC-SHA256 of body, sent as X-Signature.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// ExportOwner posts every stored record of owner to the configured sink.
// Transport errors and 5xx are retried; 4xx fails immediately.
func (p *Pipeline) ExportOwner(ctx context.Context, owner string) (int, error) {
	if p.cfg.SinkURL == "" || p.cfg.SinkSecret == "" {
		return 0, ErrSinkNotConfigured
	}
	if p.st == nil {
		return 0, errors.New("no store attached")
	}
	payload := exportPayload{
		Owner:       owner,
		ExportedAt:  time.Now().UTC().Format(time.RFC3339),
		Campaigns:   p.st.Campaigns(owner, nil),
		Experiments: p.st.Experiments(owner),
	}
	n := len(payload.Campaigns) + len(payload.Experiments)
	if n == 0 {
		return 0, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	sig := Sign(p.cfg.SinkSecret, b)

	err = utils.NewBackoff(100*time.Millisecond, 2).Do(ctx, func(i int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.SinkURL, bytes.NewReader(b))
		if err != nil {
			return utils.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Signature", sig)
		resp, err := p.c.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err = fmt.Errorf("export sink non-2xx: %d body=%s", resp.StatusCode, string(body))
		if resp.StatusCode < 500 {
			return utils.Permanent(err)
		}
		return err
	})
	if err != nil {
		exportsTotal.WithLabelValues("error").Inc()
		return 0, err
	}
	exportsTotal.WithLabelValues("ok").Inc()
	p.log.InfoContext(ctx, "export complete", slog.String("owner", owner), slog.Int("records", n))
	return n, nil
}
