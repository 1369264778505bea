package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasdesk/docproc/ai/mock"
	"github.com/atlasdesk/docproc/core"
	"github.com/atlasdesk/docproc/ingestion"
	"github.com/atlasdesk/docproc/storage"
	"github.com/atlasdesk/docproc/storage/badger"
)

type stubFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type serverEnv struct {
	attachments storage.AttachmentRepository
	analyzer    *mock.ImageAnalyzer
	fetcher     *stubFetcher
	ts          *httptest.Server
}

func newServerEnv(t *testing.T) *serverEnv {
	t.Helper()

	attachments, contents, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	analyzer := mock.NewImageAnalyzer()
	fetcher := &stubFetcher{data: []byte("Hello world. This is a test.")}

	service, err := ingestion.NewService(attachments, contents, analyzer,
		ingestion.WithFetcher(fetcher),
		ingestion.WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(service.Release)

	ts := httptest.NewServer(New(service, nil).Handler())
	t.Cleanup(ts.Close)

	return &serverEnv{
		attachments: attachments,
		analyzer:    analyzer,
		fetcher:     fetcher,
		ts:          ts,
	}
}

func (e *serverEnv) addAttachment(t *testing.T, fileName, fileType string) *core.Attachment {
	t.Helper()
	added, err := e.attachments.AddAttachment(context.Background(), &core.Attachment{
		FileURL:  "https://files.example.com/" + fileName,
		FileName: fileName,
		FileType: fileType,
	})
	require.NoError(t, err)
	return added
}

func (e *serverEnv) process(t *testing.T, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(e.ts.URL+"/v1/documents/process", "application/json",
		bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealth(t *testing.T) {
	env := newServerEnv(t)

	resp, err := http.Get(env.ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProcess_Success(t *testing.T) {
	env := newServerEnv(t)
	att := env.addAttachment(t, "notes.txt", "text/plain")

	resp, body := env.process(t, fmt.Sprintf(`{"attachment_id": %d}`, att.Id))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotZero(t, body["content_id"])
	assert.Equal(t, float64(1), body["chunk_count"])
	assert.Equal(t, false, body["has_image_analysis"])
	assert.Equal(t, false, body["reused"])
}

func TestProcess_ReusesCompleted(t *testing.T) {
	env := newServerEnv(t)
	att := env.addAttachment(t, "notes.txt", "text/plain")

	env.process(t, fmt.Sprintf(`{"attachment_id": %d}`, att.Id))
	resp, body := env.process(t, fmt.Sprintf(`{"attachment_id": %d}`, att.Id))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["reused"])
	assert.Equal(t, 1, env.fetcher.calls)
}

func TestProcess_ImageAnalysisToggle(t *testing.T) {
	env := newServerEnv(t)
	env.fetcher.data = []byte{0x89, 'P', 'N', 'G'}
	att := env.addAttachment(t, "diagram.png", "image/png")

	resp, body := env.process(t,
		fmt.Sprintf(`{"attachment_id": %d, "enable_image_analysis": false}`, att.Id))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["has_image_analysis"])
	assert.Zero(t, env.analyzer.CallCount())
}

func TestProcess_AttachmentNotFound(t *testing.T) {
	env := newServerEnv(t)

	resp, body := env.process(t, `{"attachment_id": 4242}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestProcess_UnsupportedMediaType(t *testing.T) {
	env := newServerEnv(t)
	att := env.addAttachment(t, "archive.zip", "application/zip")

	resp, _ := env.process(t, fmt.Sprintf(`{"attachment_id": %d}`, att.Id))

	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestProcess_DownloadFailure(t *testing.T) {
	env := newServerEnv(t)
	env.fetcher.err = fmt.Errorf("%w: connection refused", ingestion.ErrDownloadFailed)
	att := env.addAttachment(t, "notes.txt", "text/plain")

	resp, _ := env.process(t, fmt.Sprintf(`{"attachment_id": %d}`, att.Id))

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestProcess_BadRequests(t *testing.T) {
	env := newServerEnv(t)

	resp, _ := env.process(t, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.process(t, `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProcess_MethodNotAllowed(t *testing.T) {
	env := newServerEnv(t)

	resp, err := http.Get(env.ts.URL + "/v1/documents/process")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
