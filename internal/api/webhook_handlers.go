package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

type webhookProxyRequest struct {
	URL     string          `json:"url" validate:"required,url"`
	Payload json.RawMessage `json:"payload"`
}

// ProxyWebhook forwards a JSON payload to an automation endpoint on the
// caller's behalf, so browser clients aren't blocked by CORS on arbitrary
// targets. The outbound call gets a hard 30-second deadline.
func (h *Handlers) ProxyWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookProxyRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "a valid url is required")
		return
	}

	target, err := url.Parse(req.URL)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") {
		respondError(w, http.StatusBadRequest, "url must be http or https")
		return
	}

	if len(req.Payload) == 0 {
		req.Payload = json.RawMessage(`{}`)
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.webhookTimeout)
	defer cancel()

	outbound, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(req.Payload))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not build outbound request")
		return
	}
	outbound.Header.Set("Content-Type", "application/json")

	resp, err := h.webhookClient.Do(outbound)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			respondSafeError(w, http.StatusGatewayTimeout, err, "webhook target timed out")
			return
		}
		respondSafeError(w, http.StatusBadGateway, err, "webhook target unreachable")
		return
	}
	defer resp.Body.Close()

	// Cap the relayed body; automation endpoints answer small payloads.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		respondSafeError(w, http.StatusBadGateway, err, "failed reading webhook response")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"status": resp.StatusCode,
		"body":   string(body),
	})
}
