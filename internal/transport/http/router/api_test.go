package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"blood-donor-service/internal/core/config"
	"blood-donor-service/internal/core/database"
	"blood-donor-service/internal/domain"
	"blood-donor-service/internal/repo"
	"blood-donor-service/internal/service"
	"blood-donor-service/internal/transport/http/handler"
)

func init() { gin.SetMode(gin.TestMode) }

type testApp struct {
	api   *gin.Engine
	admin *gin.Engine
	db    *gorm.DB
}

func newTestApp(t *testing.T) testApp {
	return newTestAppWithLimits(t, config.Limits{MaxBodyBytes: 1 << 20})
}

func newTestAppWithLimits(t *testing.T, lim config.Limits) testApp {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "api.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	l := zap.NewNop()
	svc := service.NewDonorService(repo.NewUserRepo(db), repo.NewBloodRequestRepo(db), nil, l)
	return testApp{
		api:   NewAPIEngine(l, lim, handler.NewDonorHandler(svc, l)),
		admin: NewAdminEngine(l, config.Limits{}, handler.NewAdminHandler(svc, l)),
		db:    db,
	}
}

func call(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestDonorScenario(t *testing.T) {
	app := newTestApp(t)

	w := call(t, app.api, http.MethodPost, "/register/",
		`{"name":"Alice","blood_type":"O-","role":"donor","contact_info":"555-1234"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Alice","blood_type":"O-","role":"donor","contact_info":"555-1234","available":true}`, w.Body.String())
	alice := decode[domain.User](t, w)

	w = call(t, app.api, http.MethodGet, "/donors/O-", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []domain.User{alice}, decode[[]domain.User](t, w))

	w = call(t, app.api, http.MethodPost, "/register/",
		`{"name":"Bob","blood_type":"O-","role":"donor","contact_info":"555-5678","available":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	bob := decode[domain.User](t, w)
	assert.Equal(t, int64(2), bob.ID)
	assert.False(t, bob.Available)

	w = call(t, app.api, http.MethodGet, "/donors/O-", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []domain.User{alice}, decode[[]domain.User](t, w))
}

func TestDonorsFilter(t *testing.T) {
	app := newTestApp(t)
	for _, body := range []string{
		`{"name":"A","blood_type":"A+","role":"donor","contact_info":"a"}`,
		`{"name":"B","blood_type":"a+","role":"donor","contact_info":"b"}`,
		`{"name":"C","blood_type":"A+","role":"hospital","contact_info":"c"}`,
		`{"name":"D","blood_type":"A+","role":"donor","contact_info":"d","available":false}`,
		`{"name":"E","blood_type":"A+","role":"donor","contact_info":"e"}`,
	} {
		require.Equal(t, http.StatusOK, call(t, app.api, http.MethodPost, "/register/", body).Code)
	}

	w := call(t, app.api, http.MethodGet, "/donors/A+", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]domain.User](t, w)
	require.Len(t, got, 2)
	for _, u := range got {
		assert.Equal(t, "donor", u.Role)
		assert.Equal(t, "A+", u.BloodType)
		assert.True(t, u.Available)
	}

	// 无中间写入时重复查询结果一致
	again := call(t, app.api, http.MethodGet, "/donors/A+", "")
	assert.Equal(t, w.Body.String(), again.Body.String())

	w = call(t, app.api, http.MethodGet, "/donors/O+", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"No available donors found"}`, w.Body.String())
}

func TestHospitals(t *testing.T) {
	app := newTestApp(t)

	w := call(t, app.api, http.MethodGet, "/hospitals/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"No hospitals found"}`, w.Body.String())

	call(t, app.api, http.MethodPost, "/register/", `{"name":"Alice","blood_type":"O-","role":"donor","contact_info":"x"}`)
	w = call(t, app.api, http.MethodPost, "/register/", `{"name":"General","blood_type":"","role":"hospital","contact_info":"front desk"}`)
	require.Equal(t, http.StatusOK, w.Code)
	general := decode[domain.User](t, w)

	w = call(t, app.api, http.MethodGet, "/hospitals/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []domain.User{general}, decode[[]domain.User](t, w))
}

func TestRequestBlood(t *testing.T) {
	app := newTestApp(t)

	// hospital_id 不存在也能成功；status 由服务端固定
	w := call(t, app.api, http.MethodPost, "/request-blood/",
		`{"hospital_id":404,"blood_type":"B-","status":"fulfilled"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"hospital_id":404,"blood_type":"B-","status":"pending"}`, w.Body.String())

	w = call(t, app.api, http.MethodPost, "/request-blood/", `{"hospital_id":1,"blood_type":"B-"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), decode[domain.BloodRequest](t, w).ID)
}

func TestValidationErrors(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		path, body string
	}{
		{"/register/", `{"name":"Alice","blood_type":"O-","role":"donor"}`},
		{"/register/", `{"name":1,"blood_type":"O-","role":"donor","contact_info":"x"}`},
		{"/register/", `{"name":"A","blood_type":"O-","role":"donor","contact_info":"x","available":"yes"}`},
		{"/register/", `{"name":"A","blood_type":"O-","role":"donor","contact_info":"x","available":null}`},
		{"/register/", `not json`},
		{"/request-blood/", `{"blood_type":"O-"}`},
		{"/request-blood/", `{"hospital_id":"one","blood_type":"O-"}`},
	}
	for _, tc := range cases {
		w := call(t, app.api, http.MethodPost, tc.path, tc.body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, tc.body)
		assert.Contains(t, w.Body.String(), `"detail"`)
	}

	// 校验失败的请求不落库
	w := call(t, app.admin, http.MethodGet, "/admin/v1/users", "")
	assert.Contains(t, w.Body.String(), `"total":0`)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	w := call(t, app.api, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":1}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = call(t, app.api, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestAdminLists(t *testing.T) {
	app := newTestApp(t)
	call(t, app.api, http.MethodPost, "/register/", `{"name":"Alice","blood_type":"O-","role":"donor","contact_info":"555-1234"}`)
	call(t, app.api, http.MethodPost, "/register/", `{"name":"General","blood_type":"","role":"hospital","contact_info":"desk"}`)
	call(t, app.api, http.MethodPost, "/request-blood/", `{"hospital_id":2,"blood_type":"O-"}`)
	call(t, app.api, http.MethodPost, "/request-blood/", `{"hospital_id":7,"blood_type":"A+"}`)

	w := call(t, app.admin, http.MethodGet, "/admin/v1/users?role=hospital", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"msg":"OK","data":{
		"list":[{"id":2,"name":"General","blood_type":"","role":"hospital","contact_info":"desk","available":true}],
		"total":1,"page":1,"size":20}}`, w.Body.String())

	w = call(t, app.admin, http.MethodGet, "/admin/v1/blood-requests?size=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"msg":"OK","data":{
		"list":[{"id":2,"hospital_id":7,"blood_type":"A+","status":"pending"}],
		"total":2,"page":1,"size":1}}`, w.Body.String())

	w = call(t, app.admin, http.MethodGet, "/admin/v1/blood-requests?hospital_id=2&status=pending", "")
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = call(t, app.admin, http.MethodGet, "/admin/v1/users?page=x", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"code":422`)
}

func TestRegisterStorageFault(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, database.Close(app.db))

	w := call(t, app.api, http.MethodPost, "/register/",
		`{"name":"Alice","blood_type":"O-","role":"donor","contact_info":"555-1234"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"register user failed"}`, w.Body.String())

	w = call(t, app.api, http.MethodGet, "/hospitals/", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"find hospitals failed"}`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	w := call(t, app.api, http.MethodGet, "/no-such-page", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, w.Body.String())
}

func TestPerIPRateLimit(t *testing.T) {
	app := newTestAppWithLimits(t, config.Limits{PerIPRPS: 1, PerIPBurst: 1})

	from := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = ip + ":4321"
		w := httptest.NewRecorder()
		app.api.ServeHTTP(w, req)
		return w
	}
	assert.Equal(t, http.StatusOK, from("10.1.0.1").Code)
	w := from("10.1.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"detail":"too many requests"}`, w.Body.String())
	assert.Equal(t, http.StatusOK, from("10.1.0.2").Code)
}

type orderMod struct {
	name string
	prio int
	seen *[]string
}

func (m orderMod) MountAPI(*gin.RouterGroup) { *m.seen = append(*m.seen, m.name) }
func (m orderMod) Priority() int             { return m.prio }

func TestMountOrder(t *testing.T) {
	var seen []string
	NewAPIEngine(zap.NewNop(), config.Limits{},
		orderMod{name: "late", prio: 200, seen: &seen},
		orderMod{name: "early", prio: 1, seen: &seen},
	)
	assert.Equal(t, []string{"early", "late"}, seen)
}
