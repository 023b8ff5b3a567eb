package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"digicoop-backend/models"

	"github.com/google/uuid"
)

func TestAdminRoutesRejectNonAdmin(t *testing.T) {
	db := freshDB()
	router := setupAdminRouter(db)
	_, coopToken := seedTestUser(db, "coop@ferme.sn", models.ProfileCooperative)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/admin/users", nil, coopToken))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if parseResponse(w)["redirect"] != "/dashboard" {
		t.Fatal("expected dashboard redirect hint")
	}
}

func TestAdminListUsers(t *testing.T) {
	db := freshDB()
	router := setupAdminRouter(db)
	_, adminToken := seedTestUser(db, "ops@octus-agency.com", models.ProfilePersonal)
	seedTestUser(db, "coop@ferme.sn", models.ProfileCooperative)
	seedTestUser(db, "paysan@example.sn", models.ProfilePersonal)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/admin/users?profile=cooperative", nil, adminToken))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if int(resp["total"].(float64)) != 1 {
		t.Fatalf("expected 1 cooperative account, got %v", resp["total"])
	}
	entry := resp["users"].([]interface{})[0].(map[string]interface{})
	if entry["email"] != "coop@ferme.sn" {
		t.Fatalf("unexpected account: %v", entry)
	}
	if entry["role"] != models.RoleCooperative {
		t.Fatalf("expected derived role in payload, got %v", entry["role"])
	}
}

func TestAdminBlockUserPreventsLogin(t *testing.T) {
	db := freshDB()
	adminRouter := setupAdminRouter(db)
	authRouter := setupAuthRouter(db)
	_, adminToken := seedTestUser(db, "ops@octus-agency.com", models.ProfilePersonal)
	target, _ := seedTestUser(db, "bloque@example.sn", models.ProfilePersonal)

	w := httptest.NewRecorder()
	adminRouter.ServeHTTP(w, authRequest("PATCH", "/api/admin/users/"+target.ID.String()+"/block",
		map[string]interface{}{"blocked": true}, adminToken))
	if w.Code != http.StatusOK {
		t.Fatalf("block: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	authRouter.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", map[string]string{
		"email":    "bloque@example.sn",
		"password": "password123",
	}))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for blocked account, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	adminRouter.ServeHTTP(w, authRequest("PATCH", "/api/admin/users/"+target.ID.String()+"/block",
		map[string]interface{}{"blocked": false}, adminToken))
	if w.Code != http.StatusOK {
		t.Fatalf("unblock: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	authRouter.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", map[string]string{
		"email":    "bloque@example.sn",
		"password": "password123",
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected login restored after unblock, got %d", w.Code)
	}
}

func TestAdminBlockUnknownUser(t *testing.T) {
	db := freshDB()
	router := setupAdminRouter(db)
	_, adminToken := seedTestUser(db, "ops@octus-agency.com", models.ProfilePersonal)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PATCH", "/api/admin/users/"+uuid.NewString()+"/block",
		map[string]interface{}{"blocked": true}, adminToken))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
