package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doConvert(t *testing.T, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/convert?"+query, nil)
	rec := httptest.NewRecorder()
	handleConvert(rec, req)
	return rec
}

func TestHandleConvert(t *testing.T) {
	rec := doConvert(t, "x=0.1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0.1\n", rec.Body.String())

	rec = doConvert(t, "x=255&radix=16")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ff\n", rec.Body.String())

	rec = doConvert(t, "x=NaN")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NaN\n", rec.Body.String())
}

func TestHandleConvertRejects(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, doConvert(t, "x=bogus").Code)
	assert.Equal(t, http.StatusBadRequest, doConvert(t, "x=1&radix=37").Code)
	assert.Equal(t, http.StatusBadRequest, doConvert(t, "x=1&radix=zzz").Code)
}
