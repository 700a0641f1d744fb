package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ambientchat/backend/internal/api/handler"
	"ambientchat/backend/internal/chathub"
	"ambientchat/backend/internal/core"
	"ambientchat/backend/internal/models"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := core.NewStore()
	hub := chathub.NewHub()
	go hub.Run()

	r := gin.New()
	handler.NewHandler(store, hub).RegisterRoutes(r, "*")
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeUser(t *testing.T, w *httptest.ResponseRecorder) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	return u
}

func TestAPI_FullScenario(t *testing.T) {
	r := newTestRouter()

	// Register Al.
	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{"nickname": "@al", "name": "Al"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	al := decodeUser(t, w)
	assert.True(t, core.ValidID(al.ID))

	// Registering @al again is a conflict.
	w = doJSON(t, r, http.MethodPost, "/api/register", gin.H{"nickname": "@al", "name": "Other"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Login with the exact pair.
	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{"id": al.ID, "nickname": "@al"})
	require.Equal(t, http.StatusOK, w.Code)

	// Opening a chat with an unregistered partner fails.
	w = doJSON(t, r, http.MethodPost, "/api/chats/open", gin.H{"a": al.ID, "b": "ZZ00000000"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Register Bo, then open the chat.
	w = doJSON(t, r, http.MethodPost, "/api/register", gin.H{"nickname": "@bo", "name": "Bo"})
	require.Equal(t, http.StatusOK, w.Code)
	bo := decodeUser(t, w)

	w = doJSON(t, r, http.MethodPost, "/api/chats/open", gin.H{"a": al.ID, "b": bo.ID})
	require.Equal(t, http.StatusOK, w.Code)
	var chat models.Chat
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chat))
	assert.Empty(t, chat.Messages)

	// Post a message.
	w = doJSON(t, r, http.MethodPost, "/api/chats/"+chat.ID+"/messages", gin.H{"from": al.ID, "text": "hi"})
	require.Equal(t, http.StatusOK, w.Code)
	var posted struct {
		OK      bool           `json:"ok"`
		Message models.Message `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posted))
	assert.True(t, posted.OK)
	assert.NotZero(t, posted.Message.TS)
	assert.Empty(t, posted.Message.Reactions)

	// React to it.
	w = doJSON(t, r, http.MethodPost, "/api/chats/"+chat.ID+"/react", gin.H{"index": 0, "emoji": "👍", "from": bo.ID})
	require.Equal(t, http.StatusOK, w.Code)

	// Refetch shows one reaction on the first message.
	w = doJSON(t, r, http.MethodGet, "/api/chats/"+chat.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chat))
	require.Len(t, chat.Messages, 1)
	assert.Len(t, chat.Messages[0].Reactions, 1)
}

func TestAPI_StatusMapping(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{"nickname": "@al", "name": "Al"})
	require.Equal(t, http.StatusOK, w.Code)
	al := decodeUser(t, w)
	w = doJSON(t, r, http.MethodPost, "/api/register", gin.H{"nickname": "@bo", "name": "Bo"})
	require.Equal(t, http.StatusOK, w.Code)
	bo := decodeUser(t, w)
	w = doJSON(t, r, http.MethodPost, "/api/register", gin.H{"nickname": "@cy", "name": "Cy"})
	require.Equal(t, http.StatusOK, w.Code)
	cy := decodeUser(t, w)

	w = doJSON(t, r, http.MethodPost, "/api/chats/open", gin.H{"a": al.ID, "b": bo.ID})
	require.Equal(t, http.StatusOK, w.Code)
	var chat models.Chat
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chat))

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"register bad nickname", http.MethodPost, "/api/register", gin.H{"nickname": "al", "name": "Al"}, http.StatusBadRequest},
		{"login missing fields", http.MethodPost, "/api/login", gin.H{"id": al.ID}, http.StatusBadRequest},
		{"login unknown pair", http.MethodPost, "/api/login", gin.H{"id": al.ID, "nickname": "@bo"}, http.StatusNotFound},
		{"get unknown user", http.MethodGet, "/api/users/ZZ00000000", nil, http.StatusNotFound},
		{"update unknown user", http.MethodPut, "/api/users/ZZ00000000", gin.H{"name": "X"}, http.StatusNotFound},
		{"open chat missing body", http.MethodPost, "/api/chats/open", gin.H{"a": al.ID}, http.StatusBadRequest},
		{"get unknown chat", http.MethodGet, "/api/chats/nope__nope", nil, http.StatusNotFound},
		{"message to unknown chat", http.MethodPost, "/api/chats/nope__nope/messages", gin.H{"from": al.ID, "text": "hi"}, http.StatusNotFound},
		{"message from non-participant", http.MethodPost, "/api/chats/" + chat.ID + "/messages", gin.H{"from": cy.ID, "text": "hi"}, http.StatusForbidden},
		{"react missing index", http.MethodPost, "/api/chats/" + chat.ID + "/react", gin.H{"emoji": "👍", "from": al.ID}, http.StatusBadRequest},
		{"react index out of range", http.MethodPost, "/api/chats/" + chat.ID + "/react", gin.H{"index": 0, "emoji": "👍", "from": al.ID}, http.StatusNotFound},
		{"react negative index", http.MethodPost, "/api/chats/" + chat.ID + "/react", gin.H{"index": -1, "emoji": "👍", "from": al.ID}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestAPI_SearchEndpoint(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{"nickname": "@al", "name": "Al"})
	require.Equal(t, http.StatusOK, w.Code)
	al := decodeUser(t, w)

	// Nickname search finds the user.
	w = doJSON(t, r, http.MethodGet, "/api/users/search?q=@al", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var results []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)

	// Turn allowNick off: nickname search goes dark, direct GET still works.
	w = doJSON(t, r, http.MethodPut, "/api/users/"+al.ID,
		gin.H{"privacy": gin.H{"allowNick": false}})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/users/search?q=@al", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Empty(t, results)

	w = doJSON(t, r, http.MethodGet, "/api/users/"+al.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
