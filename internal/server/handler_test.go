package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gjrich/cintel-04-local/internal/dashboard"
	"github.com/gjrich/cintel-04-local/internal/domain"
	"github.com/gjrich/cintel-04-local/internal/render"
)

func fptr(v float64) *float64 { return &v }

func sptr(s domain.Sex) *domain.Sex { return &s }

func newTestServer(t *testing.T) (*httptest.Server, *dashboard.Dashboard) {
	t.Helper()
	data := domain.NewDataset([]domain.Record{
		{Species: domain.SpeciesAdelie, Island: domain.IslandBiscoe, BillLengthMM: fptr(39.1), BillDepthMM: fptr(18.7), BodyMassG: fptr(3750), Sex: sptr(domain.SexMale)},
		{Species: domain.SpeciesGentoo, Island: domain.IslandDream, BillLengthMM: fptr(46.1), BillDepthMM: fptr(13.2), BodyMassG: fptr(5000), Sex: sptr(domain.SexFemale)},
	})
	dash := dashboard.New(data, dashboard.WithRenderers(render.DefaultRenderers()...))
	if _, err := dash.Refresh(context.Background()); err != nil {
		t.Fatalf("initial refresh failed: %v", err)
	}

	mux := http.NewServeMux()
	New(dash).Routes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, dash
}

type frameResult struct {
	Selection domain.Selection           `json:"selection"`
	Display   domain.Display             `json:"display"`
	Total     int                        `json:"total"`
	Matched   int                        `json:"matched"`
	Artifacts map[string]render.Artifact `json:"artifacts"`
}

func decodeFrame(t *testing.T, resp *http.Response) frameResult {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	var result frameResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return result
}

func TestGetDashboard(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/dashboard")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	result := decodeFrame(t, resp)

	if result.Total != 2 {
		t.Errorf("expected total 2, got %d", result.Total)
	}
	for _, name := range []string{"penguin_table", "penguin_grid", "plotly_histogram", "seaborn_histogram", "mass_histogram", "scatterplot"} {
		if _, ok := result.Artifacts[name]; !ok {
			t.Errorf("missing artifact %s", name)
		}
	}
}

func TestPutSelection(t *testing.T) {
	ts, dash := newTestServer(t)

	body := `{"species":["Adelie"],"islands":["Biscoe","Dream"],"sexes":["Male","Female"],"mass_min":2500,"mass_max":6000}`
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/selection", strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	result := decodeFrame(t, resp)

	if result.Matched != 1 {
		t.Errorf("expected 1 matched record, got %d", result.Matched)
	}
	if dash.Filtered().Len() != 1 {
		t.Errorf("dashboard state not updated, filtered=%d", dash.Filtered().Len())
	}
	if table := result.Artifacts["penguin_table"].Table; table == nil || table.Total != 2 {
		t.Errorf("raw table should keep the full dataset: %+v", table)
	}
}

func TestPutSelectionPartialPayloadKeepsOtherFields(t *testing.T) {
	ts, dash := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/selection", strings.NewReader(`{"species":["Gentoo"]}`))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	decodeFrame(t, resp)

	sel := dash.Selection()
	if len(sel.Species) != 1 || sel.Species[0] != "Gentoo" {
		t.Errorf("species not replaced: %v", sel.Species)
	}
	if sel.MassMin != domain.DefaultSelection().MassMin {
		t.Errorf("untouched mass bound changed: %g", sel.MassMin)
	}
}

func TestPutDisplayDoesNotChangeMatch(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/dashboard")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	before := decodeFrame(t, resp)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/display", strings.NewReader(`{"attribute":"body_mass_g","plotly_bin_count":20}`))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	after := decodeFrame(t, resp)

	if after.Matched != before.Matched {
		t.Errorf("display change altered match count: %d -> %d", before.Matched, after.Matched)
	}
	if after.Display.Attribute != domain.AttrBodyMass || after.Display.PlotlyBinCount != 20 {
		t.Errorf("display not updated: %+v", after.Display)
	}
	if hist := after.Artifacts["plotly_histogram"].Histogram; hist == nil || hist.Attribute != domain.AttrBodyMass {
		t.Errorf("histogram did not follow the display attribute: %+v", hist)
	}
}

func TestGetPenguins(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/penguins")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var records []domain.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatalf("failed to decode records: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected the full dataset, got %d records", len(records))
	}
}

func TestExportCSV(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/export?format=csv")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, ".csv") {
		t.Errorf("unexpected content disposition %q", cd)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/export?format=pdf")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/dashboard", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}
}
