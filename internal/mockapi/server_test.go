package mockapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/mockapi"
)

func TestLoadFixtures(t *testing.T) {
	fx, err := mockapi.LoadFixtures("testdata/fixtures.yaml")
	require.NoError(t, err)

	require.Len(t, fx.SettlementDocuments, 2)
	first := fx.SettlementDocuments[0]
	assert.Equal(t, "AF-000001", first.DocumentNumber)
	assert.Equal(t, billing.StatusCalculated, first.Status)
	assert.Equal(t, "1234.5", first.TotalExclVat.String())
	assert.True(t, first.VatAmount.Valid)
	assert.False(t, first.Period.IsOpenEnded())

	credit := fx.SettlementDocuments[1]
	assert.Equal(t, billing.DocumentTypeCreditNote, credit.DocumentType)
	assert.False(t, credit.VatAmount.Valid)
	assert.True(t, credit.Period.IsOpenEnded())
	require.NotNil(t, credit.OriginalDocumentID)
	assert.Equal(t, first.ID, *credit.OriginalDocumentID)

	require.Len(t, fx.MeteringPoints, 1)
	assert.Equal(t, billing.ConnectionConnected, fx.MeteringPoints[0].ConnectionState)

	require.Len(t, fx.Customers, 2)
	assert.Equal(t, billing.KindCompany, fx.Customers[1].Kind())

	require.Len(t, fx.Supplies, 1)
	assert.Equal(t, fx.MeteringPoints[0].ID, fx.Supplies[0].MeteringPointID)
	assert.True(t, fx.Supplies[0].IsOpenEnded())
}

func TestLoadFixtures_Missing(t *testing.T) {
	_, err := mockapi.LoadFixtures("testdata/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading fixtures")
}

func TestSampleFixtures(t *testing.T) {
	fx := mockapi.SampleFixtures()

	assert.Greater(t, len(fx.SettlementDocuments), 20)
	assert.Greater(t, len(fx.Supplies), 20)
	require.NoError(t, billing.CheckUnique(fx.SettlementDocuments))
	require.NoError(t, billing.CheckUnique(fx.MeteringPoints))
	require.NoError(t, billing.CheckUnique(fx.Customers))
	require.NoError(t, billing.CheckUnique(fx.Supplies))

	for _, c := range fx.Customers {
		assert.NoError(t, c.Validate())
	}
	for _, s := range fx.Supplies {
		assert.Equal(t, s.IsActive, s.IsOpenEnded(), "supply %s", s.ID)
	}

	again := mockapi.SampleFixtures()
	assert.Equal(t, fx.Customers[0].ID, again.Customers[0].ID)
}

func TestServer_List(t *testing.T) {
	srv := mockapi.NewServer(mockapi.SampleFixtures())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/customers")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var customers []billing.Customer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&customers))
	assert.Len(t, customers, len(mockapi.SampleFixtures().Customers))
	assert.Equal(t, 1, srv.Hits(billing.CollectionCustomers))
	assert.Equal(t, 0, srv.Hits(billing.CollectionSupplies))
}

func TestServer_EmptyCollectionIsArray(t *testing.T) {
	ts := httptest.NewServer(mockapi.NewServer(nil).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/supplies")
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.JSONEq(t, `[]`, string(raw))
}

func TestServer_Get(t *testing.T) {
	fx := mockapi.SampleFixtures()
	ts := httptest.NewServer(mockapi.NewServer(fx).Handler())
	defer ts.Close()

	want := fx.MeteringPoints[3]
	resp, err := http.Get(ts.URL + "/api/metering-points/" + want.ID.String())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got billing.MeteringPoint
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, want, got)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"bad id", "/api/metering-points/not-a-uuid", http.StatusBadRequest},
		{"unknown id", "/api/metering-points/" + fx.Customers[0].ID.String(), http.StatusNotFound},
		{"unknown route", "/api/invoices", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, gErr := http.Get(ts.URL + tt.path)
			require.NoError(t, gErr)
			defer r.Body.Close()
			assert.Equal(t, tt.status, r.StatusCode)
			assert.Equal(t, "application/problem+json", r.Header.Get("Content-Type"))
		})
	}
}

func TestServer_Failure(t *testing.T) {
	srv := mockapi.NewServer(
		mockapi.SampleFixtures(),
		mockapi.WithFailure(billing.CollectionSettlements, http.StatusServiceUnavailable, "database offline"),
	)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/settlement-documents")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "database offline", body["detail"])
	assert.Equal(t, "Service Unavailable", body["title"])
}

func TestServer_Latency(t *testing.T) {
	srv := mockapi.NewServer(nil, mockapi.WithLatency(50*time.Millisecond))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	start := time.Now()
	resp, err := http.Get(ts.URL + "/api/customers")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestServer_Health(t *testing.T) {
	ts := httptest.NewServer(mockapi.NewServer(nil).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, mockapi.DefaultBackendVersion, body["version"])
}
