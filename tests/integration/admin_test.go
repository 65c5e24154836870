//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func adminHeaders() map[string]string {
	return map[string]string{"api_key": adminAPIKey}
}

func TestAdminOrders_RequiresKey(t *testing.T) {
	resp := doRequest(t, httpClient, http.MethodPost, "/api/admin/orders",
		map[string]any{}, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", resp.StatusCode)
	}

	resp2 := doRequest(t, httpClient, http.MethodPost, "/api/admin/orders",
		map[string]any{}, map[string]string{"api_key": "wrong"})
	defer resp2.Body.Close()

	if resp2.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", resp2.StatusCode)
	}
}

func TestAdminOrders_CreateAndFetch(t *testing.T) {
	resp := doRequest(t, httpClient, http.MethodPost, "/api/admin/orders", map[string]any{
		"customerName":  "Walk-in customer",
		"customerPhone": "01600000000",
		"items": []map[string]any{
			{"slug": "chocolate-croissant", "quantity": 2},
			{"slug": "baguette", "quantity": 1},
		},
	}, adminHeaders())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	created := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()

	if created.Total != "390.00" {
		t.Errorf("total: got %q, want 390.00", created.Total)
	}
	if created.Status != "pending" {
		t.Errorf("status: got %q, want pending", created.Status)
	}
	if created.DeliveryAddress != "" {
		t.Errorf("expected pickup order, got address %q", created.DeliveryAddress)
	}
	if len(created.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(created.Items))
	}

	// Fetch the stored record back by ticket.
	resp = doRequest(t, httpClient, http.MethodGet, "/api/admin/orders/"+created.TicketID, nil, adminHeaders())
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	fetched := decodeJSON[orderResponse](t, resp)
	if fetched.ID != created.ID {
		t.Errorf("fetched order %q, created %q", fetched.ID, created.ID)
	}
}

func TestAdminOrders_UnknownProduct(t *testing.T) {
	resp := doRequest(t, httpClient, http.MethodPost, "/api/admin/orders", map[string]any{
		"customerName":  "Walk-in customer",
		"customerPhone": "01600000000",
		"items":         []map[string]any{{"slug": "no-such-item", "quantity": 1}},
	}, adminHeaders())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestInvoice_UnknownTicket(t *testing.T) {
	resp := doGet(t, "/api/orders/BB-FFFFFF/invoice")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	body := decodeJSON[errorResponse](t, resp)
	if body.Message == "" {
		t.Error("expected error message")
	}
}
