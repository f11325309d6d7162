package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PrintLinea is one rendered line on a kitchen ticket: product, quantity and
// the human-readable modification notes ("sin cebolla", "extra queso x2").
type PrintLinea struct {
	Producto      string   `json:"producto"`
	Cantidad      int      `json:"cantidad"`
	Modificadores []string `json:"modificadores,omitempty"`
	Observaciones string   `json:"observaciones,omitempty"`
}

// PrintPayload is sent to the print bridge, the small HTTP agent running next
// to the kitchen printers (exposed by the desktop shell on site).
type PrintPayload struct {
	Impresora string       `json:"impresora"`
	Zona      string       `json:"zona"`
	Mesa      string       `json:"mesa"`
	Mozo      string       `json:"mozo"`
	Lineas    []PrintLinea `json:"lineas"`
	Hora      string       `json:"hora"`
}

// PrintResponse is the bridge's acknowledgement.
type PrintResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	JobRef string `json:"job_ref,omitempty"`
}

// ImpresoraClient delegates physical printing to the bridge over HTTP. This
// decoupling keeps printer failures out of the request path: the backend only
// ever enqueues print jobs and the worker talks to the bridge.
type ImpresoraClient struct {
	bridgeURL  string
	httpClient *http.Client
}

func NewImpresoraClient(bridgeURL string) *ImpresoraClient {
	return &ImpresoraClient{
		bridgeURL:  bridgeURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Imprimir sends a ticket to the bridge and returns its acknowledgement.
func (c *ImpresoraClient) Imprimir(ctx context.Context, payload PrintPayload) (*PrintResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("impresora: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.bridgeURL+"/print", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("impresora: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("impresora: bridge unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("impresora: bridge returned %d", resp.StatusCode)
	}

	var result PrintResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("impresora: decode response: %w", err)
	}
	if !result.OK {
		return &result, fmt.Errorf("impresora: bridge rejected job: %s", result.Error)
	}
	return &result, nil
}

// Printers asks the bridge which printers it can reach, used by the health
// endpoint and the zones admin screen.
func (c *ImpresoraClient) Printers(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.bridgeURL+"/printers", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("impresora: bridge unreachable: %w", err)
	}
	defer resp.Body.Close()

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, fmt.Errorf("impresora: decode printers: %w", err)
	}
	return names, nil
}
