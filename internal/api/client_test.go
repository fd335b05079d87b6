package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}

	u, err = parseBaseURL("https://shop.example.com/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("localhost:3000")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "localhost:3000" {
		t.Fatalf("url = %q, want http://localhost:3000", u.String())
	}
}

func TestClient_FetchesEndpoints(t *testing.T) {
	t.Parallel()

	var gotCartBody map[string]any
	var gotUserAgent, gotRequestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/api/products":
			_ = json.NewEncoder(w).Encode([]Product{{ID: "p1", Name: "Jacket", Price: 120}})
		case r.URL.Path == "/api/products/p1":
			_ = json.NewEncoder(w).Encode(Product{ID: "p1", Name: "Jacket"})
		case r.URL.Path == "/api/cart" && r.Method == http.MethodPost:
			_ = json.NewDecoder(r.Body).Decode(&gotCartBody)
			_ = json.NewEncoder(w).Encode(cartPayload{Items: []CartItem{
				{Product: Product{ID: "p1", Price: 120}, Quantity: 2},
			}})
		case r.URL.Path == "/api/product-actions/p1/favorite":
			_ = json.NewEncoder(w).Encode(FavoriteResult{Favorited: true})
		case r.URL.Path == "/api/product-actions/p1/like":
			_ = json.NewEncoder(w).Encode(LikeResult{LikesCount: 3, Liked: true})
		case r.URL.Path == "/api/checkout/create-checkout-session":
			_ = json.NewEncoder(w).Encode(checkoutPayload{URL: "https://pay.example.com/s/abc"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	products, err := c.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("ListProducts = %#v, want 1 product p1", products)
	}

	items, err := c.AddToCart(ctx, "p1", 2)
	if err != nil {
		t.Fatalf("AddToCart returned error: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("AddToCart items = %#v, want 1 line qty=2", items)
	}
	if gotCartBody["productId"] != "p1" || gotCartBody["quantity"] != float64(2) {
		t.Fatalf("AddToCart body = %v, want productId=p1 quantity=2", gotCartBody)
	}

	fav, err := c.ToggleFavorite(ctx, "p1")
	if err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}
	if !fav.Favorited {
		t.Fatalf("ToggleFavorite = %#v, want favorited", fav)
	}

	like, err := c.ToggleLike(ctx, "p1")
	if err != nil {
		t.Fatalf("ToggleLike returned error: %v", err)
	}
	if like.LikesCount != 3 || !like.Liked {
		t.Fatalf("ToggleLike = %#v, want count=3 liked", like)
	}

	checkoutURL, err := c.CreateCheckoutSession(ctx, []CheckoutLine{{Name: "Jacket", Price: 120, Quantity: 1}})
	if err != nil {
		t.Fatalf("CreateCheckoutSession returned error: %v", err)
	}
	if !strings.HasPrefix(checkoutURL, "https://pay.example.com/") {
		t.Fatalf("checkout url = %q, want pay.example.com redirect", checkoutURL)
	}

	if !strings.HasPrefix(gotUserAgent, "restyle/") {
		t.Fatalf("User-Agent = %q, want restyle/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID header missing")
	}
}

func TestClient_ServerMessageAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cart":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"product out of stock"}`))
		case "/api/products":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.AddToCart(context.Background(), "p1", 1)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("AddToCart error = %v, want *api.Error", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.UserMessage() != "product out of stock" {
		t.Fatalf("error = %#v, want 400 with server message", apiErr)
	}

	_, err = c.ListProducts(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("ListProducts error = %v, want decode response error", err)
	}
}

func TestClient_UnauthorizedHook(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	fired := 0
	c.OnUnauthorized(func() { fired++ })

	// Auth endpoints never trigger the hook: a 401 from /me is the
	// normal anonymous bootstrap outcome.
	if _, err := c.Me(context.Background()); !IsUnauthorized(err) {
		t.Fatalf("Me error = %v, want unauthorized", err)
	}
	if fired != 0 {
		t.Fatalf("hook fired %d times for auth endpoint, want 0", fired)
	}

	if _, err := c.GetCart(context.Background()); !IsUnauthorized(err) {
		t.Fatalf("GetCart error = %v, want unauthorized", err)
	}
	if fired != 1 {
		t.Fatalf("hook fired %d times, want 1", fired)
	}
}

func TestClient_SetTokenSendsCookie(t *testing.T) {
	t.Parallel()

	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("token"); err == nil {
			gotCookie = cookie.Value
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(userPayload{User: User{ID: "u1", Role: "buyer"}})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetToken("tok-123")

	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("Me user = %#v, want u1", user)
	}
	if gotCookie != "tok-123" {
		t.Fatalf("token cookie = %q, want tok-123", gotCookie)
	}
}
