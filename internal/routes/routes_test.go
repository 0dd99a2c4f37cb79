package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/plant-decor/internal/clock"
	"github.com/BruksfildServices01/plant-decor/internal/config"
	"github.com/BruksfildServices01/plant-decor/internal/events"
	"github.com/BruksfildServices01/plant-decor/internal/infra/repository"
	"github.com/BruksfildServices01/plant-decor/internal/metrics"
	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/scheduler"
	"github.com/BruksfildServices01/plant-decor/internal/seed"
	"github.com/BruksfildServices01/plant-decor/internal/storage"
	"github.com/BruksfildServices01/plant-decor/internal/store"
)

const testSecret = "routes-secret"

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type app struct {
	router *gin.Engine
	clock  *clock.Fake
}

func newApp(t *testing.T) *app {
	return newAppWith(t, nil)
}

// newAppWith lets a test swap dependencies before the routes are registered.
func newAppWith(t *testing.T, override func(*Deps)) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	c := clock.NewFake(t0)
	bus := events.NewBus()
	opts := store.Options{Clock: c, Bus: bus}

	catalog, err := store.NewCatalogStore(ctx, opts)
	require.NoError(t, err)
	carts, err := store.NewCartStore(ctx, opts)
	require.NoError(t, err)
	bus.Subscribe(carts.ObserveCatalog)
	orders, err := store.NewOrderStore(ctx, opts)
	require.NoError(t, err)
	care, err := store.NewCareServiceStore(ctx, opts, scheduler.NewLocal(c, zap.NewNop()), 30*time.Minute)
	require.NoError(t, err)
	chats, err := store.NewChatStore(ctx, opts)
	require.NoError(t, err)
	require.NoError(t, seed.SeedAll(ctx, catalog, care, zap.NewNop()))

	d := Deps{
		Config: &config.Config{
			JWTSecret:      testSecret,
			ChatRatePerMin: 100,
			MinLeadTime:    48 * time.Hour,
		},
		Log:     zap.NewNop(),
		Clock:   c,
		Metrics: metrics.New(),
		Catalog: catalog,
		Carts:   carts,
		Orders:  orders,
		Care:    care,
		Chats:   chats,
		Photos:  storage.NewMemoryPhotoStore("/photos"),
	}
	if override != nil {
		override(&d)
	}

	r := gin.New()
	RegisterRoutes(r, d)
	return &app{router: r, clock: c}
}

func bearer(t *testing.T, id string, role models.Role, name string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id,
		"role": string(role),
		"name": name,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func (a *app) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type listBody[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func TestPublicCatalog(t *testing.T) {
	a := newApp(t)

	w := a.do(t, http.MethodGet, "/api/plants?category=succulent", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	plants := decode[listBody[models.Plant]](t, w)
	require.Len(t, plants.Data, 1)
	assert.Equal(t, "plant-echeveria", plants.Data[0].ID)

	w = a.do(t, http.MethodGet, "/api/plants?q=MONSTERA", "", nil)
	assert.Equal(t, 1, decode[listBody[models.Plant]](t, w).Total)

	w = a.do(t, http.MethodGet, "/api/plants/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodGet, "/api/care-packages", "", nil)
	assert.Equal(t, 3, decode[listBody[models.CarePackage]](t, w).Total)
}

func TestRolesAreEnforced(t *testing.T) {
	a := newApp(t)
	customer := bearer(t, "cus-1", models.RoleCustomer, "Lan")

	w := a.do(t, http.MethodGet, "/api/me/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(t, http.MethodGet, "/api/support/care-requests", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodPost, "/api/admin/plants", customer, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCartEndpoints(t *testing.T) {
	a := newApp(t)
	customer := bearer(t, "cus-1", models.RoleCustomer, "Lan")

	w := a.do(t, http.MethodPost, "/api/me/cart/items", customer, map[string]any{
		"plant_id": "plant-snake",
		"quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/me/cart/items", customer, map[string]any{
		"plant_id":   "plant-ficus-bonsai",
		"variant_id": "variant-ficus-2",
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cart := decode[struct {
		Total     int64 `json:"total"`
		ItemCount int   `json:"item_count"`
	}](t, w)
	assert.Equal(t, int64(2*250000+1800000), cart.Total)
	assert.Equal(t, 3, cart.ItemCount)

	w = a.do(t, http.MethodPatch, "/api/me/cart/items/plant-snake", customer, map[string]any{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[struct {
		ItemCount int `json:"item_count"`
	}](t, w).ItemCount)

	w = a.do(t, http.MethodDelete, "/api/me/cart/items/plant-snake", customer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodDelete, "/api/me/cart", customer, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCareServiceFlowOverHTTP(t *testing.T) {
	a := newApp(t)
	customer := bearer(t, "cus-1", models.RoleCustomer, "Lan")
	staff := bearer(t, "staff-1", models.RoleSupportStaff, "Hoa")
	an := bearer(t, seed.DemoCaretakerAn, models.RoleCaretaker, "Nguyen Van An")
	binh := bearer(t, seed.DemoCaretakerBinh, models.RoleCaretaker, "Tran Thi Binh")

	create := map[string]any{
		"customer_name":    "Lan",
		"customer_phone":   "0909000000",
		"customer_address": "12 Nguyen Hue, District 1",
		"package_id":       "pkg-plant-doctor",
		"plant_ids":        []string{"plant-monstera"},
		"scheduled_date":   t0.Add(24 * time.Hour),
	}
	w := a.do(t, http.MethodPost, "/api/me/care-requests", customer, create)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "too_soon")

	create["scheduled_date"] = t0.Add(72 * time.Hour)
	w = a.do(t, http.MethodPost, "/api/me/care-requests", customer, create)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	req := decode[models.CareServiceRequest](t, w)
	assert.Equal(t, "pending", req.Status)
	assert.Equal(t, int64(500000), req.TotalPrice)
	assert.Equal(t, []string{"Monstera Deliciosa"}, req.PlantNames)

	path := "/api/support/care-requests/" + req.ID
	w = a.do(t, http.MethodGet, "/api/support/care-requests/pending", staff, nil)
	assert.Equal(t, 1, decode[listBody[map[string]any]](t, w).Total)

	w = a.do(t, http.MethodPatch, path+"/assign", staff, map[string]any{"caretaker_id": seed.DemoCaretakerAn})
	assert.Equal(t, http.StatusBadRequest, w.Code, "assign before confirm")

	w = a.do(t, http.MethodPatch, path+"/confirm", staff, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPatch, path+"/assign", staff, map[string]any{"caretaker_id": seed.DemoCaretakerBinh})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "caretaker_lacks_skill")

	w = a.do(t, http.MethodPatch, path+"/assign", staff, map[string]any{"caretaker_id": seed.DemoCaretakerAn})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cpath := "/api/caretaker/care-requests/" + req.ID
	w = a.do(t, http.MethodPatch, cpath+"/check-in", binh, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodPatch, cpath+"/check-in", an, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, cpath+"/add-ons", an, map[string]any{
		"name":  "Repotting",
		"price": 300000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	req = decode[models.CareServiceRequest](t, w)
	require.Len(t, req.AddOnServices, 1)
	addOnID := req.AddOnServices[0].ID

	other := bearer(t, "cus-2", models.RoleCustomer, "Minh")
	w = a.do(t, http.MethodPatch, fmt.Sprintf("/api/me/care-requests/%s/add-ons/%s/approve", req.ID, addOnID), other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	for range 2 {
		w = a.do(t, http.MethodPatch, fmt.Sprintf("/api/me/care-requests/%s/add-ons/%s/approve", req.ID, addOnID), customer, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	assert.Equal(t, int64(800000), decode[models.CareServiceRequest](t, w).TotalPrice)

	w = a.do(t, http.MethodPatch, cpath+"/handover", an, map[string]any{"caretaker_id": seed.DemoCaretakerChi})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPatch, cpath+"/complete", an, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "only the current caretaker completes")

	w = a.do(t, http.MethodPatch, cpath+"/reclaim", an, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPatch, cpath+"/complete", an, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "completed", decode[models.CareServiceRequest](t, w).Status)

	w = a.do(t, http.MethodGet, "/api/caretaker/me", an, nil)
	assert.Equal(t, models.CaretakerBuffer, decode[models.CaretakerInfo](t, w).Status)

	a.clock.Advance(30 * time.Minute)
	w = a.do(t, http.MethodGet, "/api/caretaker/me", an, nil)
	assert.Equal(t, models.CaretakerAvailable, decode[models.CaretakerInfo](t, w).Status)
}

func TestCaretakerStatusEndpoint(t *testing.T) {
	a := newApp(t)
	an := bearer(t, seed.DemoCaretakerAn, models.RoleCaretaker, "An")

	w := a.do(t, http.MethodPatch, "/api/caretaker/me/status", an, map[string]any{"status": "busy"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodPatch, "/api/caretaker/me/status", an, map[string]any{"status": "on_leave"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.CaretakerOnLeave, decode[models.CaretakerInfo](t, w).Status)
}

func TestChatFlowOverHTTP(t *testing.T) {
	a := newApp(t)
	customer := bearer(t, "cus-1", models.RoleCustomer, "Lan")
	staff := bearer(t, "staff-1", models.RoleSupportStaff, "Hoa")

	w := a.do(t, http.MethodPost, "/api/me/chat", customer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sess := decode[models.ChatSession](t, w)
	assert.Equal(t, "ai-only", sess.Status)

	w = a.do(t, http.MethodPost, "/api/me/chat/"+sess.ID+"/messages", customer, map[string]any{"message": "My fern is brown"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sess = decode[models.ChatSession](t, w)
	require.Len(t, sess.Messages, 3)
	assert.Equal(t, models.SenderAI, sess.Messages[2].Sender)

	w = a.do(t, http.MethodPatch, "/api/support/chats/"+sess.ID+"/join", staff, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "join before handoff")

	w = a.do(t, http.MethodPatch, "/api/me/chat/"+sess.ID+"/request-human", customer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodGet, "/api/support/chats/waiting", staff, nil)
	assert.Equal(t, 1, decode[listBody[models.ChatSession]](t, w).Total)

	w = a.do(t, http.MethodPatch, "/api/support/chats/"+sess.ID+"/join", staff, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "active", decode[models.ChatSession](t, w).Status)

	w = a.do(t, http.MethodPatch, "/api/support/chats/"+sess.ID+"/close", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPost, "/api/me/chat/"+sess.ID+"/messages", customer, map[string]any{"message": "hello?"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "chat_session_closed")
}

func TestPhotoUploadIsServedBack(t *testing.T) {
	a := newApp(t)
	customer := bearer(t, "cus-1", models.RoleCustomer, "Lan")
	staff := bearer(t, "staff-1", models.RoleSupportStaff, "Hoa")
	an := bearer(t, seed.DemoCaretakerAn, models.RoleCaretaker, "An")

	w := a.do(t, http.MethodPost, "/api/me/care-requests", customer, map[string]any{
		"customer_name":    "Lan",
		"customer_phone":   "0909000000",
		"customer_address": "12 Nguyen Hue",
		"package_id":       "pkg-plant-spa",
		"scheduled_date":   t0.Add(72 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[models.CareServiceRequest](t, w).ID

	a.do(t, http.MethodPatch, "/api/support/care-requests/"+id+"/confirm", staff, nil)
	a.do(t, http.MethodPatch, "/api/support/care-requests/"+id+"/assign", staff, map[string]any{"caretaker_id": seed.DemoCaretakerAn})
	a.do(t, http.MethodPatch, "/api/caretaker/care-requests/"+id+"/check-in", an, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="photo"; filename="leaf.png"`)
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, mw.WriteField("description", "Leaves cleaned"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/caretaker/care-requests/"+id+"/photos", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+an)
	w = httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	r := decode[models.CareServiceRequest](t, w)
	last := r.ProgressLogs[len(r.ProgressLogs)-1]
	require.Len(t, last.Photos, 1)
	assert.Equal(t, "Leaves cleaned", last.Description)
	require.True(t, strings.HasPrefix(last.Photos[0], "/photos/"))

	w = a.do(t, http.MethodGet, last.Photos[0], "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	a := newApp(t)
	a.do(t, http.MethodGet, "/health", "", nil)

	w := a.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "plant_decor_http_request_duration_seconds")
}

func TestCheckoutAndShippingOverHTTP(t *testing.T) {
	a := newApp(t)
	customer := bearer(t, "cus-1", models.RoleCustomer, "Lan")
	staff := bearer(t, "staff-1", models.RoleSupportStaff, "Hoa")
	shipper := bearer(t, "ship-1", models.RoleShipper, "Tuan")
	otherShipper := bearer(t, "ship-2", models.RoleShipper, "Quang")

	shipping := map[string]any{
		"name":           "Lan",
		"phone":          "0909000000",
		"address":        "12 Nguyen Hue, District 1",
		"payment_method": "cod",
	}

	w := a.do(t, http.MethodPost, "/api/me/checkout", customer, shipping)
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty cart")

	a.do(t, http.MethodPost, "/api/me/cart/items", customer, map[string]any{"plant_id": "plant-snake", "quantity": 2})
	a.do(t, http.MethodPost, "/api/me/cart/items", customer, map[string]any{
		"plant_id":   "plant-ficus-bonsai",
		"variant_id": "variant-ficus-2",
		"quantity":   1,
	})

	shipping["payment_method"] = "barter"
	w = a.do(t, http.MethodPost, "/api/me/checkout", customer, shipping)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_payment_method")

	shipping["payment_method"] = "cod"
	w = a.do(t, http.MethodPost, "/api/me/checkout", customer, shipping)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode[struct {
		Order models.Order `json:"order"`
	}](t, w).Order
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, int64(2*250000+1800000), order.TotalPrice)
	require.Len(t, order.Items, 2)

	w = a.do(t, http.MethodGet, "/api/me/cart", customer, nil)
	assert.Equal(t, 0, decode[struct {
		ItemCount int `json:"item_count"`
	}](t, w).ItemCount)

	w = a.do(t, http.MethodGet, "/api/plants/plant-ficus-bonsai", "", nil)
	for _, v := range decode[models.Plant](t, w).Variants {
		if v.ID == "variant-ficus-2" {
			assert.True(t, v.IsSold)
		}
	}

	w = a.do(t, http.MethodGet, "/api/me/orders/"+order.ID, bearer(t, "cus-2", models.RoleCustomer, "Minh"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodGet, "/api/shipper/orders/available", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	spath := "/api/support/orders/" + order.ID
	w = a.do(t, http.MethodPatch, spath+"/process", staff, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "process before confirm")

	w = a.do(t, http.MethodPatch, spath+"/confirm", staff, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = a.do(t, http.MethodPatch, spath+"/process", staff, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodGet, "/api/shipper/orders/available", shipper, nil)
	assert.Equal(t, 1, decode[listBody[models.Order]](t, w).Total)

	shpath := "/api/shipper/orders/" + order.ID
	w = a.do(t, http.MethodPatch, shpath+"/ship", shipper, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	shipped := decode[models.Order](t, w)
	assert.Equal(t, "shipped", shipped.Status)
	assert.Equal(t, "Tuan", shipped.ShipperName)
	assert.True(t, strings.HasPrefix(shipped.TrackingNumber, "TRK-"))

	w = a.do(t, http.MethodPatch, shpath+"/deliver", otherShipper, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodPatch, shpath+"/deliver", shipper, map[string]any{"notes": "Left with the guard"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	delivered := decode[models.Order](t, w)
	assert.Equal(t, "delivered", delivered.Status)
	assert.Equal(t, "Left with the guard", delivered.DeliveryNotes)

	w = a.do(t, http.MethodGet, "/api/shipper/orders", shipper, nil)
	assert.Equal(t, 1, decode[listBody[models.Order]](t, w).Total)

	w = a.do(t, http.MethodPatch, "/api/me/orders/"+order.ID+"/cancel", customer, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeAuditReader struct {
	got  []repository.AuditFilter
	logs []models.AuditLog
}

func (f *fakeAuditReader) List(_ context.Context, filter repository.AuditFilter) ([]models.AuditLog, int64, error) {
	f.got = append(f.got, filter)
	return f.logs, int64(len(f.logs)), nil
}

func TestAuditLogsEndpoint(t *testing.T) {
	reader := &fakeAuditReader{logs: []models.AuditLog{{ID: 7, Action: "order.placed"}}}
	a := newAppWith(t, func(d *Deps) { d.AuditLogs = reader })
	admin := bearer(t, "admin-1", models.RoleAdmin, "Admin")

	w := a.do(t, http.MethodGet, "/api/admin/audit-logs", bearer(t, "staff-1", models.RoleSupportStaff, "Hoa"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	t.Run("defaults", func(t *testing.T) {
		w := a.do(t, http.MethodGet, "/api/admin/audit-logs", admin, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decode[struct {
			Page  int               `json:"page"`
			Limit int               `json:"limit"`
			Total int64             `json:"total"`
			Logs  []models.AuditLog `json:"logs"`
		}](t, w)
		assert.Equal(t, 1, body.Page)
		assert.Equal(t, 50, body.Limit)
		assert.Equal(t, int64(1), body.Total)
		require.Len(t, body.Logs, 1)
		assert.Equal(t, "order.placed", body.Logs[0].Action)

		f := reader.got[len(reader.got)-1]
		assert.Equal(t, 50, f.Limit)
		assert.Equal(t, 0, f.Offset)
		assert.Nil(t, f.From)
		assert.Nil(t, f.To)
	})

	t.Run("paging is clamped", func(t *testing.T) {
		a.do(t, http.MethodGet, "/api/admin/audit-logs?page=3&limit=20", admin, nil)
		f := reader.got[len(reader.got)-1]
		assert.Equal(t, 20, f.Limit)
		assert.Equal(t, 40, f.Offset)

		a.do(t, http.MethodGet, "/api/admin/audit-logs?page=-2&limit=500", admin, nil)
		f = reader.got[len(reader.got)-1]
		assert.Equal(t, 50, f.Limit)
		assert.Equal(t, 0, f.Offset)

		a.do(t, http.MethodGet, "/api/admin/audit-logs?limit=200", admin, nil)
		assert.Equal(t, 200, reader.got[len(reader.got)-1].Limit)
	})

	t.Run("filters and inclusive date range", func(t *testing.T) {
		a.do(t, http.MethodGet, "/api/admin/audit-logs?action=order.placed&entity=order&entity_id=ord-1&from=2026-05-01&to=2026-05-04", admin, nil)
		f := reader.got[len(reader.got)-1]
		assert.Equal(t, "order.placed", f.Action)
		assert.Equal(t, "order", f.Entity)
		assert.Equal(t, "ord-1", f.EntityID)
		require.NotNil(t, f.From)
		require.NotNil(t, f.To)
		assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), *f.From)
		assert.Equal(t, time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC), *f.To)

		a.do(t, http.MethodGet, "/api/admin/audit-logs?from=yesterday", admin, nil)
		assert.Nil(t, reader.got[len(reader.got)-1].From)
	})
}

func TestAuditLogsRouteNeedsADatabase(t *testing.T) {
	a := newApp(t)
	w := a.do(t, http.MethodGet, "/api/admin/audit-logs", bearer(t, "admin-1", models.RoleAdmin, "Admin"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
