package integration_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/geocoder89/staffhub/internal/domain/payment"
	"github.com/geocoder89/staffhub/internal/domain/task"
	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootAndHealth(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, open(t))

			w := s.do(t, http.MethodGet, "/", "", nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "Server is running", w.Body.String())

			assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/readyz", "", nil).Code)

			w = s.do(t, http.MethodGet, "/metrics", "", nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "staffhub_http_requests_total")
		})
	}
}

func TestSignUpIsIdempotent(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, open(t))

			w := s.do(t, http.MethodPost, "/users", "", map[string]any{"email": "jane@example.com", "name": "Jane"})
			require.Equal(t, http.StatusOK, w.Code)
			first := decode[map[string]any](t, w)
			assert.Equal(t, true, first["acknowledged"])
			assert.NotEmpty(t, first["insertedId"])

			w = s.do(t, http.MethodPost, "/users", "", map[string]any{"email": "jane@example.com", "name": "Jane"})
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"message":"user already exists","insertedId":null}`, w.Body.String())

			users := decode[[]user.User](t, s.do(t, http.MethodGet, "/users", "", nil))
			require.Len(t, users, 1)
			assert.Equal(t, user.RoleEmployee, users[0].Role)
			assert.False(t, users[0].IsVerified)
			assert.False(t, users[0].IsFired)

			w = s.do(t, http.MethodPost, "/users", "", map[string]any{"name": "No Email"})
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHRGuard(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, open(t))

			hrID := s.signUp(t, "hr@example.com", "Hana")
			s.signUp(t, "emp@example.com", "Emil")
			_, err := s.store.Users.SetRole(context.Background(), hrID, user.RoleHR)
			require.NoError(t, err)

			w := s.do(t, http.MethodGet, "/employees", "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"message":"unauthorized access"}`, w.Body.String())

			w = s.do(t, http.MethodGet, "/employees", "garbage", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			w = s.do(t, http.MethodGet, "/employees", s.token(t, "emp@example.com"), nil)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.JSONEq(t, `{"message":"forbidden access"}`, w.Body.String())

			w = s.do(t, http.MethodGet, "/employees", s.token(t, "stranger@example.com"), nil)
			assert.Equal(t, http.StatusForbidden, w.Code)

			w = s.do(t, http.MethodGet, "/employees", s.token(t, "hr@example.com"), nil)
			require.Equal(t, http.StatusOK, w.Code)

			employees := decode[[]user.EmployeeSummary](t, w)
			require.Len(t, employees, 1)
			assert.Equal(t, "emp@example.com", employees[0].Email)
		})
	}
}

func TestAdminGuardAndRoleChanges(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, open(t))

			adminToken := s.seedAdmin(t, "boss@example.com")
			empID := s.signUp(t, "emp@example.com", "Emil")
			empToken := s.token(t, "emp@example.com")

			// an HR-only route caches the employee role
			assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/progress", empToken, nil).Code)

			assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPatch, "/employees/"+empID+"/make-hr", empToken, nil).Code)

			w := s.do(t, http.MethodPatch, "/employees/"+empID+"/make-hr", adminToken, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.JSONEq(t, fmt.Sprintf(`{"_id":%q,"role":"HR"}`, empID), w.Body.String())

			// promotion takes effect immediately despite the cached role
			assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/progress", empToken, nil).Code)

			// admins are not HR
			assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/progress", adminToken, nil).Code)

			w = s.do(t, http.MethodPatch, "/employees/"+empID+"/fire", adminToken, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"_id":%q,"isFired":true}`, empID), w.Body.String())

			assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPatch, "/employees/does-not-exist/make-hr", adminToken, nil).Code)
		})
	}
}

func TestMakeHRNeverDemotesAdmin(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, open(t))

			adminToken := s.seedAdmin(t, "boss@example.com")
			admin, err := s.store.Users.GetByEmail(context.Background(), "boss@example.com")
			require.NoError(t, err)

			// warm the role cache before the attempted change
			require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/payroll", adminToken, nil).Code)

			w := s.do(t, http.MethodPatch, "/employees/"+admin.ID+"/make-hr", adminToken, nil)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, "Only employees can be promoted to HR", decode[map[string]any](t, w)["message"])

			w = s.do(t, http.MethodGet, "/payroll", adminToken, nil)
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

			stored, err := s.store.Users.GetByEmail(context.Background(), "boss@example.com")
			require.NoError(t, err)
			assert.Equal(t, user.RoleAdmin, stored.Role)
		})
	}
}

func TestVerifyAndVerifiedEmployees(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, open(t))

			adminToken := s.seedAdmin(t, "boss@example.com")
			hrID := s.signUp(t, "hr@example.com", "Hana")
			_, err := s.store.Users.SetRole(context.Background(), hrID, user.RoleHR)
			require.NoError(t, err)
			hrToken := s.token(t, "hr@example.com")

			empID := s.signUp(t, "emp@example.com", "Emil")

			w := s.do(t, http.MethodPut, "/employees/"+empID+"/verify", hrToken, map[string]any{"isVerified": true})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			w = s.do(t, http.MethodPut, "/employees/"+empID+"/verify", hrToken, map[string]any{})
			assert.Equal(t, http.StatusBadRequest, w.Code)

			admin, err := s.store.Users.GetByEmail(context.Background(), "boss@example.com")
			require.NoError(t, err)
			_, err = s.store.Users.SetVerified(context.Background(), admin.ID, true)
			require.NoError(t, err)

			w = s.do(t, http.MethodGet, "/verified-employees", adminToken, nil)
			require.Equal(t, http.StatusOK, w.Code)

			verified := decode[[]user.User](t, w)
			require.Len(t, verified, 1)
			assert.Equal(t, "emp@example.com", verified[0].Email)
		})
	}
}

func TestSalaryMustIncrease(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, open(t))

			adminToken := s.seedAdmin(t, "boss@example.com")
			empID := s.signUp(t, "emp@example.com", "Emil")

			path := "/employees/" + empID + "/salary"

			w := s.do(t, http.MethodPatch, path, adminToken, map[string]any{"salary": 1000})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			w = s.do(t, http.MethodPatch, path, adminToken, map[string]any{"salary": 1000})
			assert.Equal(t, http.StatusBadRequest, w.Code)

			w = s.do(t, http.MethodPatch, path, adminToken, map[string]any{"salary": 800})
			assert.Equal(t, http.StatusBadRequest, w.Code)

			w = s.do(t, http.MethodPatch, path, adminToken, map[string]any{"salary": 1500})
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"_id":%q,"salary":1500}`, empID), w.Body.String())
		})
	}
}

func TestTaskLifecycle(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, open(t))

			w := s.do(t, http.MethodPost, "/tasks", "", map[string]any{
				"task": "report", "hours": 3, "date": "2024-03-15", "email": "jane@example.com", "name": "Jane",
			})
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			created := decode[task.Task](t, w)
			assert.Equal(t, "March", created.Month)
			require.NotEmpty(t, created.ID)

			w = s.do(t, http.MethodPut, "/tasks/"+created.ID, "", map[string]any{"task": "report v2", "hours": 4, "date": "2024-07-01"})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			updated := decode[task.Task](t, w)
			assert.Equal(t, "report v2", updated.Task)
			assert.Equal(t, "March", updated.Month)

			mine := decode[[]task.Task](t, s.do(t, http.MethodGet, "/user-tasks?email=jane@example.com", "", nil))
			assert.Len(t, mine, 1)

			assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/tasks/does-not-exist", "", nil).Code)
			assert.Len(t, decode[[]task.Task](t, s.do(t, http.MethodGet, "/tasks", "", nil)), 1)

			assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/tasks/"+created.ID, "", nil).Code)
			assert.Empty(t, decode[[]task.Task](t, s.do(t, http.MethodGet, "/tasks", "", nil)))
		})
	}
}

func TestPayrollFlow(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, open(t))

			adminToken := s.seedAdmin(t, "boss@example.com")
			hrID := s.signUp(t, "hr@example.com", "Hana")
			_, err := s.store.Users.SetRole(context.Background(), hrID, user.RoleHR)
			require.NoError(t, err)
			hrToken := s.token(t, "hr@example.com")

			body := map[string]any{"email": "emp@example.com", "name": "Emil", "amount": 1200, "month": "March", "year": 2024}

			var wg sync.WaitGroup
			codes := make([]int, 8)
			for i := range codes {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					codes[i] = s.do(t, http.MethodPost, "/payroll", hrToken, body).Code
				}(i)
			}
			wg.Wait()

			ok := 0
			for _, c := range codes {
				if c == http.StatusOK {
					ok++
				} else {
					assert.Equal(t, http.StatusBadRequest, c)
				}
			}
			assert.Equal(t, 1, ok)

			w := s.do(t, http.MethodPost, "/payroll", hrToken, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Payment request already exists for this month")

			w = s.do(t, http.MethodGet, "/payroll", adminToken, nil)
			require.Equal(t, http.StatusOK, w.Code)

			requests := decode[[]map[string]any](t, w)
			require.Len(t, requests, 1)
			id := requests[0]["_id"].(string)

			assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPatch, "/payroll/does-not-exist/pay", adminToken, nil).Code)

			w = s.do(t, http.MethodPatch, "/payroll/"+id+"/pay", adminToken, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), "paymentDate")
		})
	}
}

func TestPaymentsPagination(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, open(t))
			ctx := context.Background()

			for i := 0; i < 12; i++ {
				require.NoError(t, s.store.Payments.Upsert(ctx, payment.Payment{
					Email: "jane@example.com", Year: 2023 + i/12, Month: 12 - i, Amount: float64(100 + i),
				}))
			}

			want := map[int]int{1: 5, 2: 5, 3: 2, 4: 0}
			for page, n := range want {
				w := s.do(t, http.MethodGet, fmt.Sprintf("/payments?email=jane@example.com&page=%d", page), "", nil)
				require.Equal(t, http.StatusOK, w.Code)

				got := decode[payment.Page](t, w)
				assert.Equal(t, 3, got.TotalPages)
				assert.Len(t, got.Payments, n, "page %d", page)

				if page == 1 {
					assert.Equal(t, 1, got.Payments[0].Month)
					assert.Equal(t, 5, got.Payments[4].Month)
				}
			}

			assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/payments?email=jane@example.com&page=0", "", nil).Code)

			empty := decode[payment.Page](t, s.do(t, http.MethodGet, "/payments?email=nobody@example.com", "", nil))
			assert.Equal(t, 0, empty.TotalPages)
			assert.Empty(t, empty.Payments)
		})
	}
}

func TestMessages(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, open(t))

			adminToken := s.seedAdmin(t, "boss@example.com")

			for _, text := range []string{"first", "second"} {
				w := s.do(t, http.MethodPost, "/messages", "", map[string]any{"email": "a@example.com", "message": text})
				require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			}

			assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/messages", "", nil).Code)

			w := s.do(t, http.MethodGet, "/messages", adminToken, nil)
			require.Equal(t, http.StatusOK, w.Code)

			msgs := decode[[]map[string]any](t, w)
			require.Len(t, msgs, 2)
			assert.Equal(t, "second", msgs[0]["message"])
		})
	}
}

func TestEmployeeByEmailRequiresToken(t *testing.T) {
	s := newTestServer(t, backends(t)["memory"](t))
	s.signUp(t, "jane@example.com", "Jane")

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/employees/jane@example.com", "", nil).Code)

	token := s.token(t, "someone@example.com")

	w := s.do(t, http.MethodGet, "/employees/jane@example.com", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"email":"jane@example.com"`))

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/employees/ghost@example.com", token, nil).Code)
}
