package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enquiryModel "somadhan-booking/models/enquiry"
	enquiryService "somadhan-booking/services/enquiry"
)

type fakeStore struct {
	records   []enquiryModel.Enquiry
	updateErr error
	deleteErr error
}

func (f *fakeStore) ListEnquiries(context.Context) ([]enquiryModel.Enquiry, error) {
	out := make([]enquiryModel.Enquiry, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeStore) InsertEnquiry(_ context.Context, record enquiryModel.Enquiry) (enquiryModel.Enquiry, error) {
	f.records = append([]enquiryModel.Enquiry{record}, f.records...)
	return record, nil
}

func (f *fakeStore) UpdateEnquiryStatus(_ context.Context, id string, status enquiryModel.EnquiryStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Status = status
		}
	}
	return nil
}

func (f *fakeStore) DeleteEnquiry(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.records[:0]
	for _, r := range f.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

type noopCache struct{}

func (noopCache) ReadEnquiries() []enquiryModel.Enquiry       { return []enquiryModel.Enquiry{} }
func (noopCache) WriteEnquiries([]enquiryModel.Enquiry) error { return nil }

func testApp(store *fakeStore) *fiber.App {
	manager := enquiryService.NewManager(store, noopCache{}, false)
	manager.Load(context.Background())
	controller := NewAdminController(manager, nil, nil)

	app := fiber.New()
	app.Get("/api/admin/enquiries", controller.Index)
	app.Post("/api/admin/enquiries/:id/status", controller.UpdateStatus)
	app.Delete("/api/admin/enquiries/:id", controller.Delete)
	app.Get("/api/admin/enquiries/stream", controller.Stream)
	app.Post("/api/admin/intake", controller.Intake)
	return app
}

func seededStore() *fakeStore {
	return &fakeStore{records: []enquiryModel.Enquiry{
		{ID: "e2", Service: enquiryModel.ServiceGrill, Category: "New", Phone: "9842057907", Status: enquiryModel.StatusContacted},
		{ID: "e1", Service: enquiryModel.ServicePlumber, Category: "Repair", Phone: "9876543210", Status: enquiryModel.StatusNew},
	}}
}

func jsonRequest(method, path string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeData(t *testing.T, resp *http.Response) []interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	return data
}

func TestIndexListsAll(t *testing.T) {
	app := testApp(seededStore())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/enquiries", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeData(t, resp), 2)
}

func TestIndexFiltersByStatus(t *testing.T) {
	app := testApp(seededStore())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/enquiries?status=New", nil), -1)
	require.NoError(t, err)

	data := decodeData(t, resp)
	require.Len(t, data, 1)
	record := data[0].(map[string]interface{})
	assert.Equal(t, "e1", record["id"])
}

func TestUpdateStatus(t *testing.T) {
	store := seededStore()
	app := testApp(store)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/enquiries/e1/status", map[string]string{"status": "Assigned"}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, enquiryModel.StatusAssigned, store.records[1].Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	app := testApp(seededStore())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/enquiries/e1/status", map[string]string{"status": "Archived"}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateStatusReportsRemoteFailure(t *testing.T) {
	store := seededStore()
	store.updateErr = errors.New("network down")
	app := testApp(store)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/enquiries/e1/status", map[string]string{"status": "Assigned"}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	store := seededStore()
	app := testApp(store)

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/api/admin/enquiries/e1", map[string]bool{"confirm": false}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, store.records, 2)
}

func TestDeleteRemovesRecord(t *testing.T) {
	store := seededStore()
	app := testApp(store)

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/api/admin/enquiries/e1", map[string]bool{"confirm": true}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, store.records, 1)
	assert.Equal(t, "e2", store.records[0].ID)
}

func TestStreamWithoutStore(t *testing.T) {
	app := testApp(seededStore())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/enquiries/stream", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestIntakeWithoutParser(t *testing.T) {
	app := testApp(seededStore())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/intake", map[string]string{"text": "need a plumber"}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
