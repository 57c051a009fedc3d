package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonit/feedbacksite/internal/constants"
	"github.com/sonit/feedbacksite/internal/dto"
	"github.com/sonit/feedbacksite/internal/models"
)

func TestTabHandler_CreateAndList(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := env.signUp(t, "alice")
	bob := env.signUp(t, "bob")

	alice.createTab(t, "Product")
	alice.createTab(t, "Support")
	bob.createTab(t, "Product")

	w := alice.do(t, http.MethodGet, "/api/tabs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.TabListResponse](t, w)
	require.Len(t, list.Tabs, 2)
	assert.Equal(t, "Product", list.Tabs[0].Name)
	assert.Equal(t, "Support", list.Tabs[1].Name)

	w = alice.do(t, http.MethodPost, "/api/tabs", map[string]string{"name": "Product"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = alice.do(t, http.MethodPost, "/api/tabs", map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.anonymous().do(t, http.MethodGet, "/api/tabs", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTabHandler_LookupByName(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := env.signUp(t, "alice")
	bob := env.signUp(t, "bob")
	tab := alice.createTab(t, "Product")

	w := alice.do(t, http.MethodGet, "/api/tabs?name=Product", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tab.ID, decode[dto.TabDTO](t, w).ID)

	w = bob.do(t, http.MethodGet, "/api/tabs?name=Product", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTabHandler_OwnershipAnswers404(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := env.signUp(t, "alice")
	bob := env.signUp(t, "bob")
	tab := alice.createTab(t, "Product")
	path := fmt.Sprintf("/api/tabs/%d", tab.ID)

	w := bob.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = bob.do(t, http.MethodPut, path, map[string]string{"name": "Mine"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = bob.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = bob.do(t, http.MethodGet, path+"/subtabs", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = alice.do(t, http.MethodGet, "/api/tabs/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = alice.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product", decode[dto.TabDTO](t, w).Name)
}

func TestTabHandler_Rename(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := env.signUp(t, "alice")
	tab := alice.createTab(t, "Product")

	w := alice.do(t, http.MethodPut, fmt.Sprintf("/api/tabs/%d", tab.ID), map[string]string{"name": "Roadmap"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Roadmap", decode[dto.TabDTO](t, w).Name)
}

func TestTabHandler_DeleteCascades(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := env.signUp(t, "alice")
	tab := alice.createTab(t, "Product")

	w := alice.do(t, http.MethodPost, "/api/subtabs", map[string]any{"name": "Bugs", "tab_id": tab.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	subTab := decode[dto.SubTabDTO](t, w)

	alice.submitFeedback(t, map[string]any{"content": "one", "sub_tab_id": subTab.ID})
	alice.submitFeedback(t, map[string]any{"content": "two", "tab_id": tab.ID})

	w = alice.do(t, http.MethodDelete, fmt.Sprintf("/api/tabs/%d", tab.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	for _, model := range []any{&models.Tab{}, &models.SubTab{}, &models.Feedback{}} {
		var n int64
		require.NoError(t, env.db.Model(model).Count(&n).Error)
		assert.Zero(t, n)
	}

	w = alice.do(t, http.MethodGet, fmt.Sprintf("/api/subtabs/%d", subTab.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubTabHandler_Lifecycle(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := env.signUp(t, "alice")
	bob := env.signUp(t, "bob")
	tab := alice.createTab(t, "Product")

	w := alice.do(t, http.MethodPost, "/api/subtabs", map[string]any{"name": "Bugs", "tab_name": "Product"})
	require.Equal(t, http.StatusCreated, w.Code)
	bugs := decode[dto.SubTabDTO](t, w)
	assert.Equal(t, tab.ID, bugs.TabID)

	w = alice.do(t, http.MethodPost, "/api/subtabs", map[string]any{"name": "Bugs", "tab_id": tab.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = alice.do(t, http.MethodPost, "/api/subtabs", map[string]any{"name": "Ideas"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = bob.do(t, http.MethodPost, "/api/subtabs", map[string]any{"name": "Ideas", "tab_id": tab.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = alice.do(t, http.MethodGet, fmt.Sprintf("/api/tabs/%d/subtabs", tab.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.SubTabListResponse](t, w)
	require.Len(t, list.SubTabs, 2)
	assert.Equal(t, constants.DefaultSubTabName, list.SubTabs[0].Name)
	assert.True(t, list.SubTabs[0].IsDefault)
	assert.Equal(t, "Bugs", list.SubTabs[1].Name)

	w = alice.do(t, http.MethodGet, fmt.Sprintf("/api/tabs/%d/subtabs?name=Bugs", tab.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, bugs.ID, decode[dto.SubTabDTO](t, w).ID)

	w = alice.do(t, http.MethodPut, fmt.Sprintf("/api/subtabs/%d", bugs.ID), map[string]string{"name": "Defects"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Defects", decode[dto.SubTabDTO](t, w).Name)

	w = alice.do(t, http.MethodDelete, fmt.Sprintf("/api/subtabs/%d", list.SubTabs[0].ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = bob.do(t, http.MethodDelete, fmt.Sprintf("/api/subtabs/%d", bugs.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = alice.do(t, http.MethodDelete, fmt.Sprintf("/api/subtabs/%d", bugs.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
