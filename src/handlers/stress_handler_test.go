package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/bankstress/src/config"
	"github.com/username/bankstress/src/models"
	"github.com/username/bankstress/src/parsers/balancesheet"
	"github.com/username/bankstress/src/processors"
	"github.com/username/bankstress/src/services"
)

const sampleCSV = `type,name,amount,rate,duration,category,fixed_float,float_share,repricing_bucket,stability
asset,Loans,1000,0.03,5,LOANS,fixed,0,1-5y,
liability,Customer Deposits,800,0.01,1,DEPOSITS,fixed,0,0-1y,core
equity,Equity,200,0,0,EQUITY,fixed,0,,
`

func newTestHandler() *StressHandler {
	config.Cfg = &config.AppConfig{MaxUploadSizeBytes: 1 << 20}
	svc := services.NewStressService(balancesheet.NewParser(), processors.NewNormalizer(), nil)
	return NewStressHandler(svc)
}

func postStress(t *testing.T, h *StressHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/stress", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleStress(rec, req)
	return rec
}

func TestHandleStress_HappyPath(t *testing.T) {
	h := newTestHandler()

	body, err := json.Marshal(map[string]any{
		"csv_text": sampleCSV,
		"params":   map[string]any{"shocks_bps": []int{100}},
	})
	require.NoError(t, err)

	rec := postStress(t, h, string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result models.StressResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.InDelta(t, 200.0, result.Equity, 1e-9)
	require.Len(t, result.Results, 1)
	assert.InDelta(t, -58.0, result.Results[0].EVEChange, 1e-9)
	assert.InDelta(t, -0.29, result.Results[0].EVEPctEquity, 1e-9)
	assert.InDelta(t, 2.4, result.Results[0].NIIDelta, 1e-9)
}

func TestHandleStress_ParamsDefaultWhenOmitted(t *testing.T) {
	h := newTestHandler()

	body, err := json.Marshal(map[string]any{"csv_text": sampleCSV})
	require.NoError(t, err)

	rec := postStress(t, h, string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result models.StressResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Results, len(models.DefaultStressParams().ShocksBPS))
}

func TestHandleStress_InfiniteCoverageEncodesAsNull(t *testing.T) {
	h := newTestHandler()

	// No deposit rows: outflows are zero, coverage is +Inf.
	csvText := `type,name,amount,rate,duration,category,fixed_float,float_share,repricing_bucket
asset,Cash,100,0,0,CASH,fixed,0,
equity,Equity,200,0,0,EQUITY,fixed,0,
`
	body, err := json.Marshal(map[string]any{
		"csv_text": csvText,
		"params":   map[string]any{"shocks_bps": []int{0}},
	})
	require.NoError(t, err)

	rec := postStress(t, h, string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var decoded struct {
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	require.Len(t, decoded.Results, 1)
	assert.Nil(t, decoded.Results[0]["lcr_coverage"])
}

func TestHandleStress_MissingColumnsIs400(t *testing.T) {
	h := newTestHandler()

	body, _ := json.Marshal(map[string]any{"csv_text": "name,amount\nLoans,100\n"})
	rec := postStress(t, h, string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing columns:")
	assert.Contains(t, rec.Body.String(), "duration")
}

func TestHandleStress_ZeroEquityIs422(t *testing.T) {
	h := newTestHandler()

	csvText := `type,name,amount,rate,duration,category,fixed_float,float_share,repricing_bucket
asset,Loans,1000,0.03,5,LOANS,fixed,0,1-5y
`
	body, _ := json.Marshal(map[string]any{"csv_text": csvText})
	rec := postStress(t, h, string(body))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleStress_InvalidParamsIs400(t *testing.T) {
	h := newTestHandler()

	body, _ := json.Marshal(map[string]any{
		"csv_text": sampleCSV,
		"params":   map[string]any{"afs_haircut": 0.9},
	})
	rec := postStress(t, h, string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "afs_haircut")
}

func TestHandleStress_MalformedBodyIs400(t *testing.T) {
	h := newTestHandler()

	rec := postStress(t, h, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postStress(t, h, `{"csv_text": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartBody(t *testing.T, contentType, fileBody, params string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="sheet.csv"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = io.WriteString(part, fileBody)
	require.NoError(t, err)

	if params != "" {
		require.NoError(t, mw.WriteField("params", params))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleStressUpload_HappyPath(t *testing.T) {
	h := newTestHandler()

	body, contentType := multipartBody(t, "text/csv", sampleCSV, `{"shocks_bps":[100]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/stress/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.HandleStressUpload(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result models.StressResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Results, 1)
	assert.InDelta(t, -58.0, result.Results[0].EVEChange, 1e-9)
}

func TestHandleStressUpload_BinaryContentRejected(t *testing.T) {
	h := newTestHandler()

	body, contentType := multipartBody(t, "text/csv", "type,name\x00binary", "")
	req := httptest.NewRequest(http.MethodPost, "/api/stress/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.HandleStressUpload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStressUpload_DisallowedContentTypeRejected(t *testing.T) {
	h := newTestHandler()

	body, contentType := multipartBody(t, "application/pdf", sampleCSV, "")
	req := httptest.NewRequest(http.MethodPost, "/api/stress/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.HandleStressUpload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
