package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"stayquest/pkg/auth"
	apperrors "stayquest/pkg/errors"
	"stayquest/pkg/logger"
	"stayquest/pkg/model"
)

type mockBookingService struct {
	createFunc       func(ctx context.Context, req *model.CreateBookingRequest, userID string) (*model.Booking, error)
	listForHotelFunc func(ctx context.Context, hotelID string) ([]*model.BookingWithUser, error)
	listForUserFunc  func(ctx context.Context, userID string) ([]*model.BookingWithHotel, error)
	deleteFunc       func(ctx context.Context, bookingID, userID string) (*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, req *model.CreateBookingRequest, userID string) (*model.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req, userID)
	}
	return &model.Booking{ID: "b1"}, nil
}

func (m *mockBookingService) ListForHotel(ctx context.Context, hotelID string) ([]*model.BookingWithUser, error) {
	if m.listForHotelFunc != nil {
		return m.listForHotelFunc(ctx, hotelID)
	}
	return []*model.BookingWithUser{}, nil
}

func (m *mockBookingService) ListForUser(ctx context.Context, userID string) ([]*model.BookingWithHotel, error) {
	if m.listForUserFunc != nil {
		return m.listForUserFunc(ctx, userID)
	}
	return []*model.BookingWithHotel{}, nil
}

func (m *mockBookingService) Delete(ctx context.Context, bookingID, userID string) (*model.Booking, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, bookingID, userID)
	}
	return &model.Booking{ID: bookingID, UserID: userID}, nil
}

// testGuard reads the caller from X-Test-User and treats "admin" as the only admin.
type testGuard struct{}

func (testGuard) RequireAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		uid := r.Header.Get("X-Test-User")
		if uid == "" {
			_ = apperrors.WriteError(w, apperrors.Unauthorized(auth.MsgUnauthenticated))
			return
		}
		next(w, r.WithContext(auth.WithUserID(r.Context(), uid)), ps)
	}
}

func (g testGuard) RequireAdminUser(next httprouter.Handle) httprouter.Handle {
	return g.RequireAuth(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if auth.UserIDFromContext(r.Context()) != "admin" {
			_ = apperrors.WriteError(w, apperrors.Forbidden(auth.MsgAdminRequired))
			return
		}
		next(w, r, ps)
	})
}

func newRouter(svc *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, testGuard{}, logger.Discard()).RegisterRoutes(router)
	return router
}

func do(router http.Handler, method, target, user, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		r.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestCreate_EmptyCreatedResponse(t *testing.T) {
	var gotUser string
	router := newRouter(&mockBookingService{
		createFunc: func(ctx context.Context, req *model.CreateBookingRequest, userID string) (*model.Booking, error) {
			gotUser = userID
			return &model.Booking{ID: "b1"}, nil
		},
	})

	w := do(router, http.MethodPost, "/api/bookings", "user_1", `{"hotelId":"665f1c2e9b1e8a3d4c5b6a70","checkIn":"2030-01-01","checkOut":"2030-01-03"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
	if gotUser != "user_1" {
		t.Errorf("user = %q", gotUser)
	}
}

func TestCreate_Unauthenticated(t *testing.T) {
	called := false
	router := newRouter(&mockBookingService{
		createFunc: func(ctx context.Context, req *model.CreateBookingRequest, userID string) (*model.Booking, error) {
			called = true
			return nil, nil
		},
	})

	w := do(router, http.MethodPost, "/api/bookings", "", `{}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if called {
		t.Error("service reached without a session")
	}
}

func TestCreate_SessionCheckedBeforeContentType(t *testing.T) {
	router := newRouter(&mockBookingService{})

	post := func(user string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`checkIn=2030-01-01`))
		r.Header.Set("Content-Type", "text/plain")
		if user != "" {
			r.Header.Set("X-Test-User", user)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	if w := post(""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", w.Code)
	}
	if w := post("user_1"); w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("signed in: status = %d, want 415", w.Code)
	}
}

func TestCreate_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"date range", apperrors.InvalidDateRange("Check-in date must be in the future"), http.StatusBadRequest},
		{"hotel missing", apperrors.NotFound("Hotel"), http.StatusNotFound},
		{"storage", apperrors.Internal("Failed to create booking", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockBookingService{
				createFunc: func(ctx context.Context, req *model.CreateBookingRequest, userID string) (*model.Booking, error) {
					return nil, tt.err
				},
			})
			w := do(router, http.MethodPost, "/api/bookings", "user_1", `{"hotelId":"x"}`)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestListForHotel_AdminOnly(t *testing.T) {
	var gotHotel string
	router := newRouter(&mockBookingService{
		listForHotelFunc: func(ctx context.Context, hotelID string) ([]*model.BookingWithUser, error) {
			gotHotel = hotelID
			return []*model.BookingWithUser{{ID: "b1", User: model.BookingUser{ID: "u1", FirstName: "Ada"}}}, nil
		},
	})

	if w := do(router, http.MethodGet, "/api/bookings/hotels/h1", "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", w.Code)
	}
	if w := do(router, http.MethodGet, "/api/bookings/hotels/h1", "user_1", ""); w.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", w.Code)
	}

	w := do(router, http.MethodGet, "/api/bookings/hotels/h1", "admin", "")
	if w.Code != http.StatusOK || gotHotel != "h1" {
		t.Fatalf("status = %d hotel = %q", w.Code, gotHotel)
	}
	var body []map[string]any
	_ = json.NewDecoder(w.Body).Decode(&body)
	user, _ := body[0]["user"].(map[string]any)
	if user["firstName"] != "Ada" {
		t.Errorf("body = %v", body)
	}
}

func TestListForUser_ScopedToCaller(t *testing.T) {
	var gotUser string
	router := newRouter(&mockBookingService{
		listForUserFunc: func(ctx context.Context, userID string) ([]*model.BookingWithHotel, error) {
			gotUser = userID
			return []*model.BookingWithHotel{{Booking: model.Booking{ID: "b1"}}}, nil
		},
	})

	w := do(router, http.MethodGet, "/api/bookings/user", "user_9", "")
	if w.Code != http.StatusOK || gotUser != "user_9" {
		t.Fatalf("status = %d user = %q", w.Code, gotUser)
	}
	if !strings.Contains(w.Body.String(), `"hotel":null`) {
		t.Errorf("missing hotel should serialize as null: %s", w.Body.String())
	}
}

func TestDelete(t *testing.T) {
	router := newRouter(&mockBookingService{
		deleteFunc: func(ctx context.Context, bookingID, userID string) (*model.Booking, error) {
			if bookingID == "other" {
				return nil, apperrors.NotFound("Booking")
			}
			return &model.Booking{ID: bookingID, UserID: userID}, nil
		},
	})

	w := do(router, http.MethodDelete, "/api/bookings/b1", "user_1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Message string        `json:"message"`
		Booking model.Booking `json:"booking"`
	}
	_ = json.NewDecoder(w.Body).Decode(&body)
	if body.Message != "Booking deleted successfully" || body.Booking.ID != "b1" {
		t.Errorf("body = %+v", body)
	}

	if w := do(router, http.MethodDelete, "/api/bookings/other", "user_1", ""); w.Code != http.StatusNotFound {
		t.Errorf("foreign booking status = %d, want 404", w.Code)
	}
}
