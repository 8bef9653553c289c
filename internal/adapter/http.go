package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/familylists/familylists-go/internal/auth"
	"github.com/familylists/familylists-go/internal/config"
	"github.com/familylists/familylists-go/internal/logger"
	"github.com/familylists/familylists-go/models"
)

type httpServerAdapter struct {
	client *resty.Client
	tokens auth.TokenProvider
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// The request timeout always has a value: config fills a default, and an
// unbounded request would stall a queue drain at its head.
func NewHTTPServerAdapter(cfg config.ClientAdapter, tokens auth.TokenProvider, log *logger.Logger) (ServerAdapter, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("adapter: empty base URL")
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &httpServerAdapter{
		client: cli,
		tokens: tokens,
		logger: log,
	}, nil
}

func (h *httpServerAdapter) GetLists(ctx context.Context) ([]models.List, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.Get("/api/lists")
	if err != nil {
		return nil, fmt.Errorf("%w: get lists: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var lists []models.List
	if err = json.Unmarshal(resp.Body(), &lists); err != nil {
		return nil, fmt.Errorf("decode lists response: %w", err)
	}
	return lists, nil
}

func (h *httpServerAdapter) GetList(ctx context.Context, listID string) (models.ListDetail, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.ListDetail{}, err
	}

	resp, err := req.Get("/api/lists/" + listID)
	if err != nil {
		return models.ListDetail{}, fmt.Errorf("%w: get list: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ListDetail{}, err
	}

	var detail models.ListDetail
	if err = json.Unmarshal(resp.Body(), &detail); err != nil {
		return models.ListDetail{}, fmt.Errorf("decode list response: %w", err)
	}
	return detail, nil
}

func (h *httpServerAdapter) CreateList(ctx context.Context, create models.ListCreate) (models.ListDetail, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.ListDetail{}, err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(create).
		Post("/api/lists")
	if err != nil {
		return models.ListDetail{}, fmt.Errorf("%w: create list: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ListDetail{}, err
	}

	var detail models.ListDetail
	if err = json.Unmarshal(resp.Body(), &detail); err != nil {
		return models.ListDetail{}, fmt.Errorf("decode create list response: %w", err)
	}
	return detail, nil
}

func (h *httpServerAdapter) UpdateList(ctx context.Context, listID string, update models.ListUpdate) (models.List, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.List{}, err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		Put("/api/lists/" + listID)
	if err != nil {
		return models.List{}, fmt.Errorf("%w: update list: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.List{}, err
	}

	var list models.List
	if err = json.Unmarshal(resp.Body(), &list); err != nil {
		return models.List{}, fmt.Errorf("decode update list response: %w", err)
	}
	return list, nil
}

func (h *httpServerAdapter) DeleteList(ctx context.Context, listID string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete("/api/lists/" + listID)
	if err != nil {
		return fmt.Errorf("%w: delete list: %w", ErrNetwork, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) DuplicateList(ctx context.Context, listID string) (models.ListDetail, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.ListDetail{}, err
	}

	resp, err := req.Post("/api/lists/" + listID + "/duplicate")
	if err != nil {
		return models.ListDetail{}, fmt.Errorf("%w: duplicate list: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ListDetail{}, err
	}

	var detail models.ListDetail
	if err = json.Unmarshal(resp.Body(), &detail); err != nil {
		return models.ListDetail{}, fmt.Errorf("decode duplicate list response: %w", err)
	}
	return detail, nil
}

func (h *httpServerAdapter) GetItems(ctx context.Context, listID string) ([]models.Item, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.Get("/api/lists/" + listID + "/items")
	if err != nil {
		return nil, fmt.Errorf("%w: get items: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var items []models.Item
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("decode items response: %w", err)
	}
	return items, nil
}

func (h *httpServerAdapter) CreateItem(ctx context.Context, listID string, create models.ItemCreate) ([]models.Item, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(create).
		Post("/api/lists/" + listID + "/items")
	if err != nil {
		return nil, fmt.Errorf("%w: create item: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var items []models.Item
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("decode create item response: %w", err)
	}
	return items, nil
}

func (h *httpServerAdapter) UpdateItem(ctx context.Context, itemID string, update models.ItemUpdate) (models.Item, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Item{}, err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		Put("/api/items/" + itemID)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: update item: %w", ErrNetwork, err)
	}
	return decodeItem(resp)
}

func (h *httpServerAdapter) DeleteItem(ctx context.Context, itemID string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete("/api/items/" + itemID)
	if err != nil {
		return fmt.Errorf("%w: delete item: %w", ErrNetwork, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CheckItem(ctx context.Context, itemID string) (models.Item, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Item{}, err
	}

	resp, err := req.Post("/api/items/" + itemID + "/check")
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: check item: %w", ErrNetwork, err)
	}
	return decodeItem(resp)
}

func (h *httpServerAdapter) UncheckItem(ctx context.Context, itemID string) (models.Item, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Item{}, err
	}

	resp, err := req.Post("/api/items/" + itemID + "/uncheck")
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: uncheck item: %w", ErrNetwork, err)
	}
	return decodeItem(resp)
}

func (h *httpServerAdapter) ClearList(ctx context.Context, listID string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Post("/api/lists/" + listID + "/clear")
	if err != nil {
		return fmt.Errorf("%w: clear list: %w", ErrNetwork, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) RestoreList(ctx context.Context, listID string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Post("/api/lists/" + listID + "/restore")
	if err != nil {
		return fmt.Errorf("%w: restore list: %w", ErrNetwork, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Replay(ctx context.Context, op models.PendingMutation) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	if len(op.Body) > 0 {
		req.SetHeader("Content-Type", "application/json").
			SetBody(json.RawMessage(op.Body))
	}

	resp, err := req.Execute(op.Method, op.Path)
	if err != nil {
		return fmt.Errorf("%w: replay %s %s: %w", ErrNetwork, op.Method, op.Path, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Health(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return fmt.Errorf("%w: health: %w", ErrNetwork, err)
	}
	return mapHTTPError(resp)
}

// authedRequest builds a request carrying a freshly fetched bearer token. A
// missing token is reported as ErrUnauthorized without touching the network:
// the server would answer 401 anyway.
func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token, err := h.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	return h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token), nil
}

func decodeItem(resp *resty.Response) (models.Item, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}

	var item models.Item
	if err := json.Unmarshal(resp.Body(), &item); err != nil {
		return models.Item{}, fmt.Errorf("decode item response: %w", err)
	}
	return item, nil
}
