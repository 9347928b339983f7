// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package genie

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbxerrors "dbxkit/cli/internal/errors"
	"dbxkit/cli/internal/space"
)

// recorder is a mock workspace that counts requests and replays a fixed answer.
type recorder struct {
	calls   atomic.Int32
	status  int
	body    string
	lastReq *http.Request
	lastRaw []byte
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec.calls.Add(1)
	rec.lastRaw, _ = io.ReadAll(r.Body)
	rec.lastReq = r
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rec.status)
	_, _ = w.Write([]byte(rec.body))
}

func testInput() Input {
	return Input{
		Document:    space.Sample("main", "sales"),
		DisplayName: "My Genie Space",
		Description: "Used to understand our customers and order behaviour",
		WarehouseID: "abcdef0123456789",
	}
}

func TestProvisionSuccess(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: `{"id":"abc123","display_name":"My Genie Space"}`}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	api := New(srv.URL+"/", "dapi-test-token", 5*time.Second)
	got, err := Provision(context.Background(), api, testInput())
	require.NoError(t, err)

	assert.Equal(t, "abc123", got.ID)
	assert.Equal(t, "My Genie Space", got.DisplayName)
	assert.Equal(t, "abc123", got.Raw["id"])
	assert.EqualValues(t, 1, rec.calls.Load())

	req := rec.lastReq
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, SpacesPath, req.URL.Path)
	assert.Equal(t, "Bearer dapi-test-token", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	var body CreateSpaceRequest
	require.NoError(t, json.Unmarshal(rec.lastRaw, &body))
	assert.Equal(t, "My Genie Space", body.DisplayName)
	assert.Equal(t, "Used to understand our customers and order behaviour", body.Description)
	assert.Equal(t, "abcdef0123456789", body.WarehouseID)

	doc, err := space.Parse(body.SerializedSpace)
	require.NoError(t, err)
	assert.Equal(t, space.Sample("main", "sales"), doc)
}

func TestCreateSpaceCurrentFieldNames(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: `{"space_id":"01ef","title":"Sales"}`}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	got, err := New(srv.URL, "t", 0).CreateSpace(context.Background(), CreateSpaceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "01ef", got.ID)
	assert.Equal(t, "Sales", got.DisplayName)
}

func TestProvisionHTTPErrorNoRetry(t *testing.T) {
	rec := &recorder{status: http.StatusBadRequest, body: `{"error":"bad warehouse id"}`}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	_, err := Provision(context.Background(), New(srv.URL, "t", 0), testInput())
	require.Error(t, err)

	e, ok := dbxerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dbxerrors.HTTPFailed, e.Kind)
	assert.Equal(t, http.StatusBadRequest, e.StatusCode)
	assert.Contains(t, err.Error(), `{"error":"bad warehouse id"}`)
	assert.EqualValues(t, 1, rec.calls.Load(), "exactly one request, no retry")
}

func TestProvisionServerErrorNoRetry(t *testing.T) {
	rec := &recorder{status: http.StatusServiceUnavailable, body: "upstream down"}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	_, err := Provision(context.Background(), New(srv.URL, "t", 0), testInput())
	require.Error(t, err)
	assert.Equal(t, dbxerrors.HTTPFailed, dbxerrors.KindOf(err))
	assert.EqualValues(t, 1, rec.calls.Load())
}

func TestProvisionConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := Provision(context.Background(), New(url, "t", time.Second), testInput())
	require.Error(t, err)
	assert.Equal(t, dbxerrors.TransportFailed, dbxerrors.KindOf(err))
}

func TestProvisionMalformedResponse(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: "<html>login</html>"}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	_, err := Provision(context.Background(), New(srv.URL, "t", 0), testInput())
	require.Error(t, err)
	assert.Equal(t, dbxerrors.TransportFailed, dbxerrors.KindOf(err))
}

func TestProvisionInvalidHost(t *testing.T) {
	_, err := Provision(context.Background(), New("http://bad host", "t", 0), testInput())
	require.Error(t, err)
	assert.Equal(t, dbxerrors.TransportFailed, dbxerrors.KindOf(err))
}

func TestProvisionSendsEmptyWarehouseAsIs(t *testing.T) {
	rec := &recorder{status: http.StatusBadRequest, body: `{"error":"warehouse_id is required"}`}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	in := testInput()
	in.WarehouseID = ""

	_, err := Provision(context.Background(), New(srv.URL, "t", 0), in)
	require.Error(t, err)
	assert.Equal(t, dbxerrors.HTTPFailed, dbxerrors.KindOf(err))
	assert.EqualValues(t, 1, rec.calls.Load())

	var sent CreateSpaceRequest
	require.NoError(t, json.Unmarshal(rec.lastRaw, &sent))
	assert.Empty(t, sent.WarehouseID)
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, &Space{
		ID:          "abc123",
		DisplayName: "My Genie Space",
		Body:        []byte(`{"id":"abc123","display_name":"My Genie Space"}`),
	})

	out := buf.String()
	assert.Contains(t, out, "Genie space created successfully!")
	assert.Contains(t, out, "Space ID: abc123")
	assert.Contains(t, out, "Space Name: My Genie Space")
	assert.Contains(t, out, "Full response:")
	assert.Contains(t, out, "\"id\": \"abc123\"")
}

func TestPrintFailure(t *testing.T) {
	t.Run("http error shows status and body", func(t *testing.T) {
		var buf bytes.Buffer
		PrintFailure(&buf, "https://adb-1.example.net", dbxerrors.HTTP("create-space failed", 400, `{"error":"bad warehouse id"}`))

		out := buf.String()
		assert.Contains(t, out, "HTTP Error: 400 Bad Request")
		assert.Contains(t, out, `Response: {"error":"bad warehouse id"}`)
	})

	t.Run("transport error shows cause", func(t *testing.T) {
		var buf bytes.Buffer
		PrintFailure(&buf, "https://adb-1.example.net",
			dbxerrors.Wrap(dbxerrors.TransportFailed, "send create-space request", io.ErrUnexpectedEOF))

		out := buf.String()
		assert.Contains(t, out, "✗ Error:")
		assert.Contains(t, out, "unexpected EOF")
		assert.True(t, strings.Contains(out, "adb-1.example.net"), "troubleshooting names the host")
	})
}
