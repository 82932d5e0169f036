// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

func newTestRouter(service *Service) http.Handler {
	router := chi.NewRouter()
	router.Route("/titles/{titleID}", NewHandler(service).Register)
	return router
}

func serve(handler http.Handler, actor *sec.Actor, method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if actor != nil {
		request = request.WithContext(ctxutil.WithActor(request.Context(), actor))
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeID(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.ID)
	return body.Data.ID
}

/*
TestHandler_ReviewFlow verifies the review and comment endpoints end to end.
*/
func TestHandler_ReviewFlow(t *testing.T) {
	service, _ := newTestService()
	router := newTestRouter(service)
	reviews := "/titles/" + titleA + "/reviews/"

	// 1. Anonymous users cannot post
	recorder := serve(router, nil, http.MethodPost, reviews, `{"text":"Great","score":8}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 2. Alice posts a review
	recorder = serve(router, alice, http.MethodPost, reviews, `{"text":"Great","score":8}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	reviewID := decodeID(t, recorder)

	var created struct {
		Data struct {
			Author  string `json:"author"`
			Score   int    `json:"score"`
			PubDate string `json:"pub_date"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, "alice", created.Data.Author)
	assert.Equal(t, 8, created.Data.Score)
	assert.NotEmpty(t, created.Data.PubDate)

	// 3. A second review by Alice is a bad request
	recorder = serve(router, alice, http.MethodPost, reviews, `{"text":"Again","score":9}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// 4. The list is public and paginated
	recorder = serve(router, nil, http.MethodGet, reviews, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var list struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Meta.Total)

	// 5. Bob comments, Alice cannot edit Bob's comment
	comments := reviews + reviewID + "/comments/"
	recorder = serve(router, bob, http.MethodPost, comments, `{"text":"Agree"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	commentID := decodeID(t, recorder)

	recorder = serve(router, alice, http.MethodPatch, comments+commentID, `{"text":"No"}`)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = serve(router, nil, http.MethodGet, comments+commentID, "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	// 6. A moderator removes the review
	recorder = serve(router, moderator, http.MethodDelete, reviews+reviewID, "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = serve(router, nil, http.MethodGet, comments+commentID, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestHandler_Statuses verifies status codes for bad paths and payloads.
*/
func TestHandler_Statuses(t *testing.T) {
	service, _ := newTestService()
	router := newTestRouter(service)

	review, err := service.CreateReview(t.Context(), alice, titleA, reviewInput("Great", 8))
	require.NoError(t, err)

	tests := []struct {
		name   string
		actor  *sec.Actor
		method string
		path   string
		body   string
		status int
	}{
		{"malformed title id", nil, http.MethodGet, "/titles/42/reviews/", "", http.StatusNotFound},
		{"unknown title", nil, http.MethodGet, "/titles/" + ghost + "/reviews/", "", http.StatusNotFound},
		{"review under other title", nil, http.MethodGet, "/titles/" + titleB + "/reviews/" + review.ID, "", http.StatusNotFound},
		{"malformed review id", nil, http.MethodGet, "/titles/" + titleA + "/reviews/abc", "", http.StatusNotFound},
		{"post to unknown title", bob, http.MethodPost, "/titles/" + ghost + "/reviews/", `{"text":"x","score":5}`, http.StatusNotFound},
		{"fractional score", bob, http.MethodPost, "/titles/" + titleA + "/reviews/", `{"text":"x","score":7.5}`, http.StatusBadRequest},
		{"string score", bob, http.MethodPost, "/titles/" + titleA + "/reviews/", `{"text":"x","score":"7"}`, http.StatusBadRequest},
		{"invalid json", bob, http.MethodPost, "/titles/" + titleA + "/reviews/", `{`, http.StatusBadRequest},
		{"other user patch", bob, http.MethodPatch, "/titles/" + titleA + "/reviews/" + review.ID, `{"score":1}`, http.StatusForbidden},
		{"anonymous delete", nil, http.MethodDelete, "/titles/" + titleA + "/reviews/" + review.ID, "", http.StatusUnauthorized},
		{"author patch", alice, http.MethodPatch, "/titles/" + titleA + "/reviews/" + review.ID, `{"score":9}`, http.StatusOK},
		{"anonymous comment", nil, http.MethodPost, "/titles/" + titleA + "/reviews/" + review.ID + "/comments/", `{"text":"x"}`, http.StatusUnauthorized},
		{"comment list", nil, http.MethodGet, "/titles/" + titleA + "/reviews/" + review.ID + "/comments/", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(router, tt.actor, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
