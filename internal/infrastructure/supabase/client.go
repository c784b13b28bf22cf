package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ── Cliente PostgREST ─────────────────────────────────────────────────────────

const (
	restPrefix      = "/rest/v1/"
	maxResponseSize = 4 << 20 // 4 MB
)

// emptyBody es el cuerpo que devuelve todo resultado fallido: los callers
// iteran la secuencia sin distinguir "sin resultados" de "error de transporte".
var emptyBody = json.RawMessage("[]")

// Config datos de conexión al proyecto Supabase.
type Config struct {
	URL     string        // URL base del proyecto (sin /rest/v1)
	Key     string        // API key; se envía como apikey y como Bearer
	Timeout time.Duration // timeout del http.Client; 0 = 15 s
}

// Result resultado uniforme de una llamada al data API.
// Success false cubre tanto errores de transporte como estados no-2xx;
// en ese caso Body es siempre una secuencia vacía y ErrorMessage describe la causa.
type Result struct {
	Success      bool
	Body         json.RawMessage
	ErrorMessage string
}

// Client emite GET/POST/PATCH/DELETE contra el data API remoto (dialecto
// PostgREST) con cabeceras uniformes y cuerpos JSON. Sin reintentos.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New construye el cliente. El endpoint se puede sustituir en tests
// apuntando URL a un servidor local.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.Key,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Request llama a <base>/rest/v1/<endpoint>. El endpoint ya trae los filtros
// de consulta (ej: "products?id=eq.3"). payload se serializa como JSON para
// POST/PATCH; en GET/DELETE se ignora (pasar nil).
// Nunca devuelve error: cualquier fallo se convierte en un Result fallido.
func (c *Client) Request(ctx context.Context, method, endpoint string, payload any) Result {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return failure(fmt.Sprintf("serializar payload: %v", err))
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+restPrefix+endpoint, body)
	if err != nil {
		return failure(fmt.Sprintf("crear request: %v", err))
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return failure(fmt.Sprintf("timeout o cancelación: %v", ctx.Err()))
		}
		return failure(fmt.Sprintf("llamada HTTP fallida: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return failure(fmt.Sprintf("leer respuesta: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(fmt.Sprintf("estado %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	out := Result{Success: true, Body: emptyBody}
	if len(raw) > 0 {
		out.Body = raw
	}
	return out
}

func failure(msg string) Result {
	return Result{Success: false, Body: emptyBody, ErrorMessage: msg}
}
