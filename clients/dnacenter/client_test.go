package dnacenter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dnabot/core"
)

func newAuthenticatedClient(t *testing.T, mux *http.ServeMux) *DNACenterClient {
	t.Helper()
	mux.HandleFunc("/dna/system/api/v1/auth/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "admin", username)
		assert.Equal(t, "secret", password)
		json.NewEncoder(w).Encode(map[string]string{"Token": "tok-123"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewDNACenterClient(server.URL, true, 5*time.Second).
		Authenticate(context.Background(), "admin", "secret")
	require.NoError(t, err)
	return client
}

func TestDNACenterClient_Authenticate_MissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := NewDNACenterClient(server.URL, true, time.Second).
		Authenticate(context.Background(), "admin", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not contain a token")
}

func TestDNACenterClient_Authenticate_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewDNACenterClient(server.URL, true, time.Second).
		Authenticate(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.True(t, core.IsTransportError(err))
}

func TestDNACenterClient_GetNetworkHealth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dna/intent/api/v1/network-health", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-123", r.Header.Get(AuthTokenHeader))
		assert.Equal(t, "true", r.Header.Get(RunSyncHeader))
		assert.Equal(t, "1700000000000", r.URL.Query().Get("timestamp"))
		w.Write([]byte(`{"response":[{"healthScore":75}]}`))
	})
	client := newAuthenticatedClient(t, mux)

	body, err := client.GetNetworkHealth(context.Background(), 1700000000000)
	require.NoError(t, err)
	assert.JSONEq(t, `{"response":[{"healthScore":75}]}`, string(body))
}

func TestDNACenterClient_GetNetworkDevices(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dna/intent/api/v1/network-device/101/100", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-123", r.Header.Get(AuthTokenHeader))
		assert.Empty(t, r.Header.Get(RunSyncHeader))
		w.Write([]byte(`{"response":[{
			"hostname":"edge-1","family":"Switches and Hubs","serialNumber":"FOC123",
			"platformId":"C9300-48U","softwareVersion":"17.3.4","macAddress":"00:11:22:33:44:55",
			"managementIpAddress":"10.0.0.1","upTime":"12 days"
		}],"version":"1.0"}`))
	})
	client := newAuthenticatedClient(t, mux)

	devices, err := client.GetNetworkDevices(context.Background(), 101, 100)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, []string{
		"edge-1", "Switches and Hubs", "FOC123", "C9300-48U", "17.3.4", "00:11:22:33:44:55", "10.0.0.1",
	}, devices[0].Row())
}

func TestDNACenterClient_GetSoftwareImages_Query(t *testing.T) {
	tests := []struct {
		name      string
		family    string
		ccoOnly   bool
		wantQuery string
	}{
		{name: "no filters", wantQuery: ""},
		{name: "family only", family: "cat9k", wantQuery: "family=cat9k"},
		{name: "cco only", ccoOnly: true, wantQuery: "isCCORecommended=true"},
		{name: "family and cco", family: "cat9k", ccoOnly: true, wantQuery: "family=cat9k&isCCORecommended=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/dna/intent/api/v1/image/importation", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				w.Write([]byte(`{"response":[{"name":"cat9k_iosxe.17.03.04.SPA.bin","family":"CAT9K","createdTime":"2021-06-01"}]}`))
			})
			client := newAuthenticatedClient(t, mux)

			images, err := client.GetSoftwareImages(context.Background(), tt.family, tt.ccoOnly)
			require.NoError(t, err)
			require.Len(t, images, 1)
			assert.Equal(t, "CAT9K", images[0].Family)
		})
	}
}

func TestDNACenterClient_GetNetworkDevices_TransportFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dna/intent/api/v1/network-device/1/100", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client := newAuthenticatedClient(t, mux)

	devices, err := client.GetNetworkDevices(context.Background(), 1, 100)
	require.Error(t, err)
	assert.Nil(t, devices)
	assert.True(t, core.IsTransportError(err))
}
