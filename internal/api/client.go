package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBaseURL   = "http://127.0.0.1:3000"
	defaultUserAgent = "restyle/0.1"
	requestTimeout   = 10 * time.Second

	// maxErrorBody caps how much of an error response body is read
	// while looking for a server-provided message.
	maxErrorBody = 64 << 10
)

// Client talks to the ReStyle HTTP API. The underlying http.Client
// carries a cookie jar so session credentials travel automatically
// once the server sets them.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	jar       http.CookieJar
	userAgent string

	// onUnauthorized fires when any non-auth endpoint returns 401.
	onUnauthorized func()
}

// NewClient builds a Client for the given base URL. An empty base
// falls back to the local development server.
func NewClient(base string) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		jar:       jar,
		userAgent: defaultUserAgent,
	}, nil
}

// OnUnauthorized installs the hook invoked when a non-auth call comes
// back 401. The application uses it to route back to the login view.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// SetToken seeds the session cookie from an externally obtained token,
// e.g. the token query parameter of an OAuth redirect. After this the
// normal cookie flow takes over.
func (c *Client) SetToken(token string) {
	if strings.TrimSpace(token) == "" {
		return
	}
	c.jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:   "token",
		Value:  token,
		Path:   "/",
		MaxAge: 24 * 60 * 60,
	}})
}

// Me fetches the current actor. A 401 here means "anonymous", which
// callers treat as a normal outcome rather than a fault.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var payload userPayload
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}

// LogIn authenticates with email and password and returns the actor.
func (c *Client) LogIn(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var payload userPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/log-in", body, &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}

// SignUp registers a new account and returns the actor.
func (c *Client) SignUp(ctx context.Context, username, email, password string) (*User, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var payload userPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}

// LogOut asks the server to invalidate the session cookie.
func (c *Client) LogOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("product id required")
	}
	var product Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetCart fetches the server cart for the current session.
func (c *Client) GetCart(ctx context.Context) ([]CartItem, error) {
	var payload cartPayload
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// AddToCart adds a product and returns the server's full cart snapshot.
func (c *Client) AddToCart(ctx context.Context, id string, quantity int) ([]CartItem, error) {
	body := map[string]any{"productId": id, "quantity": quantity}
	var payload cartPayload
	if err := c.do(ctx, http.MethodPost, "/api/cart", body, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// UpdateCartItem sets a line's quantity and returns the full snapshot.
func (c *Client) UpdateCartItem(ctx context.Context, id string, quantity int) ([]CartItem, error) {
	body := map[string]any{"quantity": quantity}
	var payload cartPayload
	if err := c.do(ctx, http.MethodPatch, "/api/cart/"+id, body, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// RemoveCartItem deletes a line and returns the full snapshot.
func (c *Client) RemoveCartItem(ctx context.Context, id string) ([]CartItem, error) {
	var payload cartPayload
	if err := c.do(ctx, http.MethodDelete, "/api/cart/"+id, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// ClearCart empties the server cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/cart", nil, nil)
}

// MyFavorites fetches the products the current actor has favorited.
func (c *Client) MyFavorites(ctx context.Context) ([]Product, error) {
	var payload favoritesPayload
	if err := c.do(ctx, http.MethodGet, "/api/product-actions/my/favorites", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Favorites, nil
}

// ToggleFavorite flips the favorite flag server-side and returns the
// authoritative value, which may differ from what the caller expected
// if a concurrent mutation happened elsewhere.
func (c *Client) ToggleFavorite(ctx context.Context, id string) (FavoriteResult, error) {
	var result FavoriteResult
	if err := c.do(ctx, http.MethodPost, "/api/product-actions/"+id+"/favorite", nil, &result); err != nil {
		return FavoriteResult{}, err
	}
	return result, nil
}

// ToggleLike flips the like flag server-side and returns the
// authoritative count and flag.
func (c *Client) ToggleLike(ctx context.Context, id string) (LikeResult, error) {
	var result LikeResult
	if err := c.do(ctx, http.MethodPost, "/api/product-actions/"+id+"/like", nil, &result); err != nil {
		return LikeResult{}, err
	}
	return result, nil
}

// AddComment posts a comment and returns the product's full comment list.
func (c *Client) AddComment(ctx context.Context, id, text string) ([]Comment, error) {
	body := map[string]string{"text": text}
	var payload commentsPayload
	if err := c.do(ctx, http.MethodPost, "/api/product-actions/"+id+"/comment", body, &payload); err != nil {
		return nil, err
	}
	return payload.Comments, nil
}

// DeleteComment removes a comment and returns the remaining list.
func (c *Client) DeleteComment(ctx context.Context, id, commentID string) ([]Comment, error) {
	var payload commentsPayload
	path := "/api/product-actions/" + id + "/comment/" + commentID
	if err := c.do(ctx, http.MethodDelete, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Comments, nil
}

// CreateProduct submits a new listing. Role enforcement is the
// server's job; the client only surfaces the result.
func (c *Client) CreateProduct(ctx context.Context, p NewProduct) error {
	return c.do(ctx, http.MethodPost, "/api/products", p, nil)
}

// DeleteProduct removes one of the seller's own listings.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil)
}

// DeleteProductAdmin removes any listing through the admin route.
func (c *Client) DeleteProductAdmin(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/admin/"+id, nil, nil)
}

// CreateCheckoutSession starts a checkout for the given lines and
// returns the payment provider's redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, lines []CheckoutLine) (string, error) {
	body := map[string]any{"items": lines}
	var payload checkoutPayload
	if err := c.do(ctx, http.MethodPost, "/api/checkout/create-checkout-session", body, &payload); err != nil {
		return "", err
	}
	if strings.TrimSpace(payload.URL) == "" {
		return "", fmt.Errorf("checkout session returned no redirect url")
	}
	return payload.URL, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode, Message: readServerMessage(resp.Body)}
		if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(path) && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// isAuthPath reports whether the path belongs to the auth entry
// endpoints, which are exempt from the global unauthorized hook.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/api/auth/")
}

func readServerMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
