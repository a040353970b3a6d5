package backend

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, routes map[string]func(w http.ResponseWriter)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL+"/", nil)
}

func reply(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestReadings(t *testing.T) {
	c := newTestServer(t, map[string]func(http.ResponseWriter){
		"/data": reply(http.StatusOK, `[
			{"Datetime":"2024-05-01T12:00:00Z","Site":"01376304","Water Temperature (°C)":12.4,"Turbidity (NTU)":null},
			{"Datetime":"2024-05-01 13:00:00","Site":1376269,"Water Temperature (°C)":"12.6","Gage Height (ft)":"n/a"}
		]`),
	})

	readings, err := c.Readings(context.Background())
	require.NoError(t, err)
	require.Len(t, readings, 2)

	first := readings[0]
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), first.Datetime.UTC())
	assert.Equal(t, "01376304", first.Site)
	require.NotNil(t, first.Value("Water Temperature (°C)"))
	assert.Equal(t, 12.4, *first.Value("Water Temperature (°C)"))
	assert.Nil(t, first.Value("Turbidity (NTU)"))
	_, present := first.Values["Turbidity (NTU)"]
	assert.True(t, present)

	second := readings[1]
	assert.Equal(t, "1376269", second.Site)
	assert.Equal(t, 13, second.Datetime.Hour())
	assert.Equal(t, 12.6, *second.Value("Water Temperature (°C)"))
	assert.Nil(t, second.Value("Gage Height (ft)"))
}

func TestReadingsServerError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"flag with message", http.StatusOK, `{"error":true,"message":"upstream timeout"}`, "upstream timeout"},
		{"flag on 500", http.StatusInternalServerError, `{"error":true,"message":"USGS unavailable"}`, "USGS unavailable"},
		{"string error on 404", http.StatusNotFound, `{"error":"Data file not found"}`, "Data file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, map[string]func(http.ResponseWriter){"/data": reply(tt.status, tt.body)})

			_, err := c.Readings(context.Background())
			var serr *ServerError
			require.True(t, errors.As(err, &serr), "got %v", err)
			assert.Equal(t, tt.message, serr.ServerMessage())
			assert.Equal(t, tt.status, serr.Status)
		})
	}
}

func TestReadingsFalseErrorFlag(t *testing.T) {
	c := newTestServer(t, map[string]func(http.ResponseWriter){
		"/data": reply(http.StatusOK, `{"error":false,"message":"fine"}`),
	})

	_, err := c.Readings(context.Background())
	var ferr *FetchError
	require.True(t, errors.As(err, &ferr))
	assert.ErrorIs(t, err, errNotArray)
}

func TestReadingsUnexpectedStatus(t *testing.T) {
	c := newTestServer(t, map[string]func(http.ResponseWriter){
		"/data": reply(http.StatusBadGateway, `<html>bad gateway</html>`),
	})

	_, err := c.Readings(context.Background())
	var ferr *FetchError
	require.True(t, errors.As(err, &ferr))
	assert.ErrorIs(t, err, errUnexpected)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(&http.Client{Timeout: time.Second}, url, nil)
	_, err := c.Readings(context.Background())

	var ferr *FetchError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, url+"/data", ferr.URL)

	var serr *ServerError
	assert.False(t, errors.As(err, &serr))
}

func TestSites(t *testing.T) {
	c := newTestServer(t, map[string]func(http.ResponseWriter){
		"/site-info": reply(http.StatusOK, `{"sites":[
			{"site_no":"01376304","station_nm":"HUDSON RIVER AT PIER 84","latitude":40.7638889,"longitude":-74.0025}
		]}`),
	})

	sites, err := c.Sites(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, "01376304", sites[0].SiteNo)
	assert.Equal(t, "HUDSON RIVER AT PIER 84", sites[0].StationNm)
	assert.InDelta(t, -74.0025, sites[0].Longitude, 1e-9)
}

func TestSitesMissingField(t *testing.T) {
	c := newTestServer(t, map[string]func(http.ResponseWriter){
		"/site-info": reply(http.StatusOK, `{}`),
	})

	sites, err := c.Sites(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sites)
	assert.Empty(t, sites)
}

func TestSitesNotFound(t *testing.T) {
	c := newTestServer(t, nil)

	_, err := c.Sites(context.Background())
	assert.ErrorIs(t, err, errUnexpected)
}

func TestRaw(t *testing.T) {
	c := newTestServer(t, map[string]func(http.ResponseWriter){
		"/data": reply(http.StatusOK, `{"value":{"timeSeries":[]}}`),
	})

	body, err := c.Raw(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":{"timeSeries":[]}}`, string(body))
}

func TestDecodeReadingsNotArray(t *testing.T) {
	_, err := DecodeReadings([]byte(`{"value":[]}`))
	assert.ErrorIs(t, err, errNotArray)

	readings, err := DecodeReadings([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestDecodeReadingsNaN(t *testing.T) {
	readings, err := DecodeReadings([]byte(`[{"Datetime":"bogus","Turbidity (NTU)":"NaN"}]`))
	require.NoError(t, err)
	require.Len(t, readings, 1)

	assert.True(t, readings[0].Datetime.IsZero())
	assert.Equal(t, "bogus", readings[0].RawDatetime)
	require.NotNil(t, readings[0].Value("Turbidity (NTU)"))
	assert.True(t, math.IsNaN(*readings[0].Value("Turbidity (NTU)")))
}

func TestTruthy(t *testing.T) {
	for raw, want := range map[string]bool{
		`true`: true, `false`: false, `null`: false, `""`: false,
		`"x"`: true, `0`: false, `1`: true, `{}`: true, `[]`: true,
	} {
		assert.Equal(t, want, truthy([]byte(raw)), raw)
	}
}
